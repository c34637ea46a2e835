package operation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
)

// Movements at or below the threshold execute right away, anything larger
// stays PENDING until an agent decides
var approvalThreshold = decimal.RequireFromString("10000.00")

const defaultRejectNote = "Rejected by agent"

type Service struct {
	// Repository to access long term data
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

type SubmitParams struct {
	Type                 string
	Amount               decimal.Decimal
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
}

// Submit validates a requested movement and either executes it immediately
// (small amounts) or parks it PENDING for agent approval (large amounts).
// Validation, the operation insert and the balance mutation share one
// database transaction: a failed check leaves nothing behind.
func (s *Service) Submit(ctx context.Context, arg SubmitParams, requesterID uuid.UUID) (models.Operation, error) {
	var op models.Operation

	if !arg.Amount.IsPositive() {
		return op, apperrors.ErrOperationAmountInvalid
	}

	mv, err := newMovement(arg.Type, arg.SourceAccountID, arg.DestinationAccountID)
	if err != nil {
		return op, err
	}

	err = s.storage.InTx(ctx, func(store repository.Storage) error {
		requester, err := store.User().GetUserByID(ctx, requesterID)
		if err != nil {
			return err
		}

		// Locks are taken before validation so the checked balances are
		// still true when the mutation lands
		accounts, err := store.Account().LockAccounts(ctx, mv.accountIDs()...)
		if err != nil {
			return err
		}

		if err := mv.validate(requester.ID, accounts, arg.Amount); err != nil {
			return err
		}

		create := repository.CreateOperationParams{
			Type:                 arg.Type,
			Amount:               arg.Amount,
			Status:               models.OperationStatusPending,
			SourceAccountID:      arg.SourceAccountID,
			DestinationAccountID: arg.DestinationAccountID,
			CreatedByID:          requester.ID,
		}

		if !arg.Amount.GreaterThan(approvalThreshold) {
			now := time.Now()
			create.Status = models.OperationStatusApproved
			create.ExecutedAt = &now
		}

		op, err = store.Operation().CreateOperation(ctx, create)
		if err != nil {
			return err
		}

		if op.Status == models.OperationStatusApproved {
			return mv.apply(ctx, store.Account(), op.Amount)
		}
		return nil
	})

	return op, err
}

// Approve executes a PENDING operation on behalf of an agent.
// Account state and sufficiency are checked again under lock: balances may
// have drifted since the operation was created, and executing against a
// frozen or drained account is exactly what the approval step exists to
// prevent. The status flip is conditional on PENDING, so a concurrent
// approve or reject of the same operation fails instead of double applying.
func (s *Service) Approve(ctx context.Context, opID uuid.UUID, agentID uuid.UUID) (models.Operation, error) {
	var approved models.Operation

	err := s.storage.InTx(ctx, func(store repository.Storage) error {
		op, err := store.Operation().GetOperationByID(ctx, opID)
		if err != nil {
			return err
		}
		if op.Status != models.OperationStatusPending {
			return apperrors.ErrOperationNotPending
		}

		agent, err := store.User().GetUserByID(ctx, agentID)
		if err != nil {
			return err
		}

		mv, err := movementOf(op)
		if err != nil {
			return err
		}

		accounts, err := store.Account().LockAccounts(ctx, mv.accountIDs()...)
		if err != nil {
			return err
		}
		if err := mv.revalidate(accounts, op.Amount); err != nil {
			return err
		}

		now := time.Now()
		approved, err = store.Operation().ResolvePending(ctx, op.ID, repository.ResolveOperationParams{
			Status:       models.OperationStatusApproved,
			ApprovedByID: agent.ID,
			ApprovedAt:   now,
			ExecutedAt:   &now,
		})
		if err != nil {
			return err
		}

		return mv.apply(ctx, store.Account(), op.Amount)
	})

	return approved, err
}

// Reject resolves a PENDING operation without moving any money
func (s *Service) Reject(ctx context.Context, opID uuid.UUID, agentID uuid.UUID, reason string) (models.Operation, error) {
	var rejected models.Operation

	if reason == "" {
		reason = defaultRejectNote
	}

	err := s.storage.InTx(ctx, func(store repository.Storage) error {
		op, err := store.Operation().GetOperationByID(ctx, opID)
		if err != nil {
			return err
		}
		if op.Status != models.OperationStatusPending {
			return apperrors.ErrOperationNotPending
		}

		agent, err := store.User().GetUserByID(ctx, agentID)
		if err != nil {
			return err
		}

		rejected, err = store.Operation().ResolvePending(ctx, op.ID, repository.ResolveOperationParams{
			Status:       models.OperationStatusRejected,
			ApprovedByID: agent.ID,
			ApprovedAt:   time.Now(),
			Note:         &reason,
		})
		return err
	})

	return rejected, err
}

func (s *Service) GetOperation(ctx context.Context, opID uuid.UUID) (models.Operation, error) {
	return s.storage.Operation().GetOperationByID(ctx, opID)
}

// GetUserOperation returns the operation only to the user who created it
func (s *Service) GetUserOperation(ctx context.Context, opID uuid.UUID, userID uuid.UUID) (models.Operation, error) {
	op, err := s.storage.Operation().GetOperationByID(ctx, opID)
	if err != nil {
		return op, err
	}
	if op.CreatedByID != userID {
		return models.Operation{}, apperrors.ErrOperationNotOwned
	}
	return op, nil
}

func (s *Service) ListUserOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error) {
	return s.storage.Operation().ListOperationsByCreator(ctx, userID)
}

func (s *Service) ListPendingOperations(ctx context.Context) ([]models.Operation, error) {
	return s.storage.Operation().ListOperationsByStatus(ctx, models.OperationStatusPending)
}

func (s *Service) ListOperations(ctx context.Context) ([]models.Operation, error) {
	return s.storage.Operation().ListOperations(ctx)
}
