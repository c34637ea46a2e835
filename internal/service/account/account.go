package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
)

// How many fresh number candidates to try before giving up.
// Collisions are vanishingly rare, the bound exists to fail loudly instead
// of spinning if something is off with the number space.
const numberAttempts = 5

type Service struct {
	// Repository to access long term data
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// CreateAccount opens a zero balance ACTIVE account for the owner.
// Number uniqueness is settled by the insert itself: on a collision the
// insert fails and a fresh candidate is tried. Checking first and inserting
// after would leave a gap for a concurrent creation to race into.
func (s *Service) CreateAccount(ctx context.Context, ownerID uuid.UUID) (models.Account, error) {
	if _, err := s.storage.User().GetUserByID(ctx, ownerID); err != nil {
		return models.Account{}, err
	}

	for range numberAttempts {
		account, err := s.storage.Account().CreateAccount(ctx, generateNumber(), ownerID)
		if errors.Is(err, apperrors.ErrAccountNumberTaken) {
			continue
		}
		return account, err
	}

	return models.Account{}, fmt.Errorf("no unique account number in %d attempts", numberAttempts)
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return s.storage.Account().GetAccountByID(ctx, id)
}

// GetUserAccount returns the account only to its owner
func (s *Service) GetUserAccount(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.Account, error) {
	account, err := s.storage.Account().GetAccountByID(ctx, id)
	if err != nil {
		return account, err
	}
	if account.OwnerID != userID {
		return models.Account{}, apperrors.ErrAccountNotOwned
	}
	return account, nil
}

func (s *Service) GetAccountByNumber(ctx context.Context, number string) (models.Account, error) {
	return s.storage.Account().GetAccountByNumber(ctx, number)
}

func (s *Service) ListUserAccounts(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	return s.storage.Account().ListAccountsByOwner(ctx, userID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.storage.Account().ListAccounts(ctx)
}

func (s *Service) FreezeAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return s.storage.Account().SetAccountStatus(ctx, id, models.AccountStatusFrozen)
}

func (s *Service) ActivateAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return s.storage.Account().SetAccountStatus(ctx, id, models.AccountStatusActive)
}

func (s *Service) CloseAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return s.storage.Account().SetAccountStatus(ctx, id, models.AccountStatusClosed)
}

func generateNumber() string {
	return fmt.Sprintf("BK-%08d", rand.IntN(100_000_000))
}
