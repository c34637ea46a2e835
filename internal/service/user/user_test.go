package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
	"github.com/rmazouri/bankcore/internal/repository/postgres"
	"github.com/rmazouri/bankcore/internal/testutil"
)

func TestUser(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	withTx := func(t *testing.T, fn func(s *Service, existing models.User)) {
		testutil.InTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)

			existing, err := storage.User().CreateUser(t.Context(), repository.CreateUserParams{
				Email:          "client@bank.test",
				FullName:       "Test Client",
				HashedPassword: "hash",
				Role:           models.RoleClient,
			})
			require.NoError(t, err, "creating user should not fail")

			fn(NewService(storage), existing)
		})
	}

	t.Run("GetUser", func(t *testing.T) {
		withTx(t, func(s *Service, existing models.User) {
			got, err := s.GetUser(t.Context(), existing.ID)
			require.NoError(t, err)
			require.Equal(t, existing.ID, got.ID)

			_, err = s.GetUser(t.Context(), uuid.New())
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})

	t.Run("ListUsers", func(t *testing.T) {
		withTx(t, func(s *Service, existing models.User) {
			users, err := s.ListUsers(t.Context())

			require.NoError(t, err)
			require.Len(t, users, 1)
			require.Equal(t, existing.ID, users[0].ID)
		})
	})

	t.Run("activate and deactivate", func(t *testing.T) {
		withTx(t, func(s *Service, existing models.User) {
			got, err := s.DeactivateUser(t.Context(), existing.ID)
			require.NoError(t, err)
			require.False(t, got.Active)

			got, err = s.ActivateUser(t.Context(), existing.ID)
			require.NoError(t, err)
			require.True(t, got.Active)
		})
	})

	t.Run("UpdateUserRole", func(t *testing.T) {
		t.Run("promote to agent", func(t *testing.T) {
			withTx(t, func(s *Service, existing models.User) {
				got, err := s.UpdateUserRole(t.Context(), existing.ID, models.RoleAgent)

				require.NoError(t, err)
				require.Equal(t, models.RoleAgent, got.Role)
			})
		})

		t.Run("unknown role refused", func(t *testing.T) {
			withTx(t, func(s *Service, existing models.User) {
				_, err := s.UpdateUserRole(t.Context(), existing.ID, "SUPERVISOR")

				require.Error(t, err, "made up role should be refused")
				require.ErrorIs(t, err, apperrors.ErrRoleInvalid)
			})
		})

		t.Run("unknown user", func(t *testing.T) {
			withTx(t, func(s *Service, _ models.User) {
				_, err := s.UpdateUserRole(t.Context(), uuid.New(), models.RoleAgent)

				require.ErrorIs(t, err, apperrors.ErrUserNotFound)
			})
		})
	})
}
