package operation

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
)

// movement is the closed set of money movements the engine handles.
// Every variant owns its validation and its balance mutation, so adding a
// new operation type means writing a new variant, not extending a switch.
type movement interface {
	// Accounts the movement touches, in the order they should be reported
	accountIDs() []uuid.UUID

	// Full validation at submit time against current account snapshots
	validate(requesterID uuid.UUID, accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error

	// Validation repeated at approval time: account state and sufficiency
	// only, ownership was settled when the operation was created
	revalidate(accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error

	// Mutate balances through the repo. The caller holds the row locks
	apply(ctx context.Context, accounts repository.AccountRepo, amount decimal.Decimal) error
}

type deposit struct {
	destinationID uuid.UUID
}

type withdrawal struct {
	sourceID uuid.UUID
}

type transfer struct {
	sourceID      uuid.UUID
	destinationID uuid.UUID
}

// newMovement checks the shape of a requested movement: a known type with
// the account references that type requires
func newMovement(opType string, sourceID *uuid.UUID, destinationID *uuid.UUID) (movement, error) {
	switch opType {
	case models.OperationTypeDeposit:
		if destinationID == nil {
			return nil, apperrors.ErrOperationAccountRequired
		}
		return deposit{destinationID: *destinationID}, nil

	case models.OperationTypeWithdrawal:
		if sourceID == nil {
			return nil, apperrors.ErrOperationAccountRequired
		}
		return withdrawal{sourceID: *sourceID}, nil

	case models.OperationTypeTransfer:
		if sourceID == nil || destinationID == nil {
			return nil, apperrors.ErrOperationAccountRequired
		}
		return transfer{sourceID: *sourceID, destinationID: *destinationID}, nil

	default:
		return nil, apperrors.ErrOperationTypeInvalid
	}
}

// movementOf rebuilds the variant from an already persisted operation
func movementOf(op models.Operation) (movement, error) {
	return newMovement(op.Type, op.SourceAccountID, op.DestinationAccountID)
}

func (m deposit) accountIDs() []uuid.UUID {
	return []uuid.UUID{m.destinationID}
}

func (m deposit) validate(requesterID uuid.UUID, accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error {
	destination := accounts[m.destinationID]
	if destination.OwnerID != requesterID {
		return apperrors.ErrAccountNotOwned
	}
	return m.revalidate(accounts, amount)
}

func (m deposit) revalidate(accounts map[uuid.UUID]models.Account, _ decimal.Decimal) error {
	if accounts[m.destinationID].Status != models.AccountStatusActive {
		return apperrors.ErrAccountNotActive
	}
	return nil
}

func (m deposit) apply(ctx context.Context, accounts repository.AccountRepo, amount decimal.Decimal) error {
	_, err := accounts.Credit(ctx, m.destinationID, amount)
	return err
}

func (m withdrawal) accountIDs() []uuid.UUID {
	return []uuid.UUID{m.sourceID}
}

func (m withdrawal) validate(requesterID uuid.UUID, accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error {
	source := accounts[m.sourceID]
	if source.OwnerID != requesterID {
		return apperrors.ErrAccountNotOwned
	}
	return m.revalidate(accounts, amount)
}

func (m withdrawal) revalidate(accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error {
	source := accounts[m.sourceID]
	if source.Status != models.AccountStatusActive {
		return apperrors.ErrAccountNotActive
	}
	if source.Balance.LessThan(amount) {
		return apperrors.ErrBalanceInsufficient
	}
	return nil
}

func (m withdrawal) apply(ctx context.Context, accounts repository.AccountRepo, amount decimal.Decimal) error {
	_, err := accounts.Debit(ctx, m.sourceID, amount)
	return err
}

func (m transfer) accountIDs() []uuid.UUID {
	return []uuid.UUID{m.sourceID, m.destinationID}
}

func (m transfer) validate(requesterID uuid.UUID, accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error {
	source := accounts[m.sourceID]
	if source.OwnerID != requesterID {
		return apperrors.ErrAccountNotOwned
	}
	return m.revalidate(accounts, amount)
}

func (m transfer) revalidate(accounts map[uuid.UUID]models.Account, amount decimal.Decimal) error {
	source := accounts[m.sourceID]
	destination := accounts[m.destinationID]

	if source.Status != models.AccountStatusActive || destination.Status != models.AccountStatusActive {
		return apperrors.ErrAccountNotActive
	}
	if source.Balance.LessThan(amount) {
		return apperrors.ErrBalanceInsufficient
	}
	return nil
}

func (m transfer) apply(ctx context.Context, accounts repository.AccountRepo, amount decimal.Decimal) error {
	if _, err := accounts.Debit(ctx, m.sourceID, amount); err != nil {
		return err
	}
	_, err := accounts.Credit(ctx, m.destinationID, amount)
	return err
}
