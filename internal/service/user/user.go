package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
)

// Administrative user management: listing, activation and role changes.
// Registration lives in the auth service.
type Service struct {
	// Repository to access long term data
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.storage.User().GetUserByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.storage.User().ListUsers(ctx)
}

func (s *Service) ActivateUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.storage.User().SetUserActive(ctx, id, true)
}

func (s *Service) DeactivateUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.storage.User().SetUserActive(ctx, id, false)
}

func (s *Service) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (models.User, error) {
	switch role {
	case models.RoleClient, models.RoleAgent, models.RoleAdmin:
	default:
		return models.User{}, apperrors.ErrRoleInvalid
	}

	return s.storage.User().SetUserRole(ctx, id, role)
}
