package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
)

type AccountRepo struct {
	DB DBTX
}

const createAccount = `-- name: CreateAccount
INSERT INTO accounts (id, created_at, number, owner_id, balance, status)
VALUES ($1, now(), $2, $3, 0, 'ACTIVE')
RETURNING id, created_at, number, owner_id, balance, status
`

func (r *AccountRepo) CreateAccount(ctx context.Context, number string, ownerID uuid.UUID) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, createAccount, uuid.New(), number, ownerID)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return account, nil
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
		return account, apperrors.ErrAccountNumberTaken
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation:
		return account, apperrors.ErrUserNotFound
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

const getAccountByID = `-- name: GetAccountByID
SELECT id, created_at, number, owner_id, balance, status FROM accounts
WHERE id = $1
`

func (r *AccountRepo) GetAccountByID(ctx context.Context, id uuid.UUID) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, getAccountByID, id)
	return collectAccount(rows)
}

const getAccountByNumber = `-- name: GetAccountByNumber
SELECT id, created_at, number, owner_id, balance, status FROM accounts
WHERE number = $1
`

func (r *AccountRepo) GetAccountByNumber(ctx context.Context, number string) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, getAccountByNumber, number)
	return collectAccount(rows)
}

const listAccountsByOwner = `-- name: ListAccountsByOwner
SELECT id, created_at, number, owner_id, balance, status FROM accounts
WHERE owner_id = $1
ORDER BY created_at
`

func (r *AccountRepo) ListAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, listAccountsByOwner, ownerID)
	accounts, err := pgx.CollectRows(rows, rowToAccount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return accounts, nil
}

const listAccounts = `-- name: ListAccounts
SELECT id, created_at, number, owner_id, balance, status FROM accounts
ORDER BY created_at
`

func (r *AccountRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, listAccounts)
	accounts, err := pgx.CollectRows(rows, rowToAccount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return accounts, nil
}

// Rows are locked in ascending id order so that two transactions locking
// the same accounts always meet in the same order
const lockAccounts = `-- name: LockAccounts
SELECT id, created_at, number, owner_id, balance, status FROM accounts
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE
`

func (r *AccountRepo) LockAccounts(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]models.Account, error) {
	rows, _ := r.DB.Query(ctx, lockAccounts, ids)
	accounts, err := pgx.CollectRows(rows, rowToAccount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	locked := make(map[uuid.UUID]models.Account, len(accounts))
	for _, a := range accounts {
		locked[a.ID] = a
	}

	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return nil, apperrors.ErrAccountNotFound
		}
	}

	return locked, nil
}

const creditAccount = `-- name: CreditAccount
UPDATE accounts SET balance = balance + $2
WHERE id = $1 AND status = 'ACTIVE'
RETURNING id, created_at, number, owner_id, balance, status
`

func (r *AccountRepo) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, creditAccount, id, amount)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, pgx.ErrNoRows):
		return account, r.explainMissedUpdate(ctx, id, nil)
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

// The balance guard is part of the statement itself: a concurrent debit can
// not slip between a read and the write, and the balance never goes negative
const debitAccount = `-- name: DebitAccount
UPDATE accounts SET balance = balance - $2
WHERE id = $1 AND status = 'ACTIVE' AND balance >= $2
RETURNING id, created_at, number, owner_id, balance, status
`

func (r *AccountRepo) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, debitAccount, id, amount)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, pgx.ErrNoRows):
		return account, r.explainMissedUpdate(ctx, id, &amount)
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

const setAccountStatus = `-- name: SetAccountStatus
UPDATE accounts SET status = $2
WHERE id = $1
RETURNING id, created_at, number, owner_id, balance, status
`

func (r *AccountRepo) SetAccountStatus(ctx context.Context, id uuid.UUID, status string) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, setAccountStatus, id, status)
	return collectAccount(rows)
}

// explainMissedUpdate tells apart the reasons a guarded balance update
// matched no row: unknown account, inactive account or not enough funds
func (r *AccountRepo) explainMissedUpdate(ctx context.Context, id uuid.UUID, debited *decimal.Decimal) error {
	account, err := r.GetAccountByID(ctx, id)
	switch {
	case err != nil:
		return err
	case account.Status != models.AccountStatusActive:
		return apperrors.ErrAccountNotActive
	case debited != nil && account.Balance.LessThan(*debited):
		return apperrors.ErrBalanceInsufficient
	default:
		return errors.New("programming error, should never be here")
	}
}

func collectAccount(rows pgx.Rows) (models.Account, error) {
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, pgx.ErrNoRows):
		return account, apperrors.ErrAccountNotFound
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

func rowToAccount(row pgx.CollectableRow) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.CreatedAt, &a.Number, &a.OwnerID, &a.Balance, &a.Status)
	return a, err
}
