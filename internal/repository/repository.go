package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmazouri/bankcore/internal/models"
)

type CreateUserParams struct {
	Email          string
	FullName       string
	HashedPassword string
	Role           string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)

	// Both must return apperrors.ErrUserNotFound for unknown ids
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) (models.User, error)
	SetUserRole(ctx context.Context, id uuid.UUID, role string) (models.User, error)
}

// Account repository interface
type AccountRepo interface {
	// Create account with zero balance and ACTIVE status
	// Uniqueness of the number is enforced by the storage: on collision
	// must return apperrors.ErrAccountNumberTaken so the caller may retry
	// with a fresh candidate
	CreateAccount(ctx context.Context, number string, ownerID uuid.UUID) (models.Account, error)

	// If account not found must return apperrors.ErrAccountNotFound
	GetAccountByID(ctx context.Context, id uuid.UUID) (models.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (models.Account, error)

	ListAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// Lock the given accounts for the rest of the transaction and return
	// their current snapshots. Rows are locked in ascending id order so two
	// opposite transfers can not deadlock. Only meaningful inside InTx.
	// If any id is unknown must return apperrors.ErrAccountNotFound
	LockAccounts(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]models.Account, error)

	// Credit adds amount to the account balance.
	// Debit subtracts and fails with apperrors.ErrBalanceInsufficient when
	// the balance does not cover the amount.
	// Both mutate ACTIVE accounts only and return
	// apperrors.ErrAccountNotActive otherwise.
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (models.Account, error)
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (models.Account, error)

	SetAccountStatus(ctx context.Context, id uuid.UUID, status string) (models.Account, error)
}

type CreateOperationParams struct {
	Type                 string
	Amount               decimal.Decimal
	Status               string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CreatedByID          uuid.UUID
	ExecutedAt           *time.Time
}

type ResolveOperationParams struct {
	Status       string
	ApprovedByID uuid.UUID
	ApprovedAt   time.Time
	ExecutedAt   *time.Time
	Note         *string
}

// Operation repository interface
type OperationRepo interface {
	CreateOperation(ctx context.Context, arg CreateOperationParams) (models.Operation, error)

	// If operation not found must return apperrors.ErrOperationNotFound
	GetOperationByID(ctx context.Context, id uuid.UUID) (models.Operation, error)

	ListOperationsByCreator(ctx context.Context, userID uuid.UUID) ([]models.Operation, error)
	ListOperationsByStatus(ctx context.Context, status string) ([]models.Operation, error)
	ListOperations(ctx context.Context) ([]models.Operation, error)

	// Move a PENDING operation to its terminal status.
	// The update is conditional on the current status still being PENDING:
	// if another actor already resolved the operation must return
	// apperrors.ErrOperationNotPending, never overwrite
	ResolvePending(ctx context.Context, id uuid.UUID, arg ResolveOperationParams) (models.Operation, error)
}

// Storage aggregates repositories over a single database handle
type Storage interface {
	User() UserRepo
	Account() AccountRepo
	Operation() OperationRepo

	// InTx runs fn with a transaction scoped storage.
	// Commits if fn returns nil, rolls back otherwise.
	InTx(ctx context.Context, fn func(Storage) error) error
}
