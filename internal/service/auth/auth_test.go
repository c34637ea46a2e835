package auth

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
	"github.com/rmazouri/bankcore/internal/repository/postgres"
	"github.com/rmazouri/bankcore/internal/service/account"
	"github.com/rmazouri/bankcore/internal/testutil"
)

func TestAuth(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Helper to run a test within transaction with auth service wired to
	// real storage and a real account opener
	withTx := func(t *testing.T, fn func(s *Service, storage repository.Storage)) {
		testutil.InTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)

			s, err := NewService(Config{SecretKey: "test-secret"}, storage, account.NewService(storage))
			require.NoError(t, err, "creating auth service should not fail")

			fn(s, storage)
		})
	}

	t.Run("NewService", func(t *testing.T) {
		t.Run("requires storage and accounts", func(t *testing.T) {
			_, err := NewService(Config{SecretKey: "secret"}, nil, nil)

			require.Error(t, err)
		})

		t.Run("requires secret key", func(t *testing.T) {
			withTx(t, func(_ *Service, storage repository.Storage) {
				_, err := NewService(Config{}, storage, account.NewService(storage))

				require.Error(t, err, "empty secret key should be refused")
			})
		})
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("register ok", func(t *testing.T) {
			withTx(t, func(s *Service, storage repository.Storage) {
				user, token, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")

				require.NoError(t, err, "registering should not fail")
				require.NotEmpty(t, token, "registering should issue a token")
				require.Equal(t, "client@bank.test", user.Email)
				require.Equal(t, models.RoleClient, user.Role, "new users are clients")
				require.True(t, user.Active)
				require.NotEqual(t, "password123", user.HashedPassword, "password must be stored hashed")

				accounts, err := storage.Account().ListAccountsByOwner(t.Context(), user.ID)
				require.NoError(t, err)
				require.Len(t, accounts, 1, "registration should open the first account")
				require.True(t, accounts[0].Balance.IsZero())
			})
		})

		t.Run("duplicate email", func(t *testing.T) {
			withTx(t, func(s *Service, _ repository.Storage) {
				_, _, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")
				require.NoError(t, err)

				_, _, err = s.Register(t.Context(), "client@bank.test", "Another Client", "password456")

				require.Error(t, err, "registering same email twice should fail")
				require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
			})
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("login ok", func(t *testing.T) {
			withTx(t, func(s *Service, _ repository.Storage) {
				registered, _, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")
				require.NoError(t, err)

				user, token, err := s.Login(t.Context(), "client@bank.test", "password123")

				require.NoError(t, err, "login with valid credentials should not fail")
				require.NotEmpty(t, token)
				require.Equal(t, registered.ID, user.ID)
			})
		})

		t.Run("wrong password", func(t *testing.T) {
			withTx(t, func(s *Service, _ repository.Storage) {
				_, _, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")
				require.NoError(t, err)

				_, _, err = s.Login(t.Context(), "client@bank.test", "wrong")

				require.ErrorIs(t, err, apperrors.ErrUserNotFound, "wrong password should look like unknown user")
			})
		})

		t.Run("unknown email", func(t *testing.T) {
			withTx(t, func(s *Service, _ repository.Storage) {
				_, _, err := s.Login(t.Context(), "nobody@bank.test", "password123")

				require.ErrorIs(t, err, apperrors.ErrUserNotFound)
			})
		})

		t.Run("deactivated user", func(t *testing.T) {
			withTx(t, func(s *Service, storage repository.Storage) {
				user, _, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")
				require.NoError(t, err)
				_, err = storage.User().SetUserActive(t.Context(), user.ID, false)
				require.NoError(t, err)

				_, _, err = s.Login(t.Context(), "client@bank.test", "password123")

				require.ErrorIs(t, err, apperrors.ErrUserInactive)
			})
		})
	})

	t.Run("AuthenticateToken", func(t *testing.T) {
		t.Run("valid token", func(t *testing.T) {
			withTx(t, func(s *Service, _ repository.Storage) {
				registered, token, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")
				require.NoError(t, err)

				user, err := s.AuthenticateToken(t.Context(), token)

				require.NoError(t, err)
				require.Equal(t, registered.ID, user.ID)
			})
		})

		t.Run("garbage token", func(t *testing.T) {
			withTx(t, func(s *Service, _ repository.Storage) {
				_, err := s.AuthenticateToken(t.Context(), "garbage")

				require.Error(t, err)
			})
		})

		t.Run("token of deactivated user", func(t *testing.T) {
			withTx(t, func(s *Service, storage repository.Storage) {
				user, token, err := s.Register(t.Context(), "client@bank.test", "Test Client", "password123")
				require.NoError(t, err)
				_, err = storage.User().SetUserActive(t.Context(), user.ID, false)
				require.NoError(t, err)

				_, err = s.AuthenticateToken(t.Context(), token)

				require.ErrorIs(t, err, apperrors.ErrUserInactive, "deactivated user token should be refused")
			})
		})
	})
}
