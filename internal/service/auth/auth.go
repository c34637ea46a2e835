package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/repository"
)

// AccountOpener opens the first account for a freshly registered client
type AccountOpener interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID) (models.Account, error)
}

type Config struct {
	// Secret key to sign bearer tokens
	SecretKey string

	// Hasher to use during registration or login
	// Default bcrypt hasher is used if not set
	Hasher PasswordHasher

	// Bearer token lifetime
	AccessTokenTTL time.Duration
}

type Service struct {
	tokens *TokenManager
	hasher PasswordHasher

	// Repository to access long term data
	storage  repository.Storage
	accounts AccountOpener
}

func NewService(cfg Config, storage repository.Storage, accounts AccountOpener) (*Service, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if storage == nil || accounts == nil {
		return nil, errors.New("storage and accounts must not be nil")
	}

	tokens, err := NewTokenManager(TokenManagerConfig{
		SecretKey: cfg.SecretKey,
		AccessTTL: cfg.AccessTokenTTL,
	})
	if err != nil {
		return nil, err
	}

	return &Service{
		tokens:   tokens,
		hasher:   hasher,
		storage:  storage,
		accounts: accounts,
	}, nil
}

// Register creates a client user and opens their first account
func (s *Service) Register(ctx context.Context, email string, fullName string, password string) (models.User, string, error) {
	var user models.User

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, "", fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err = s.storage.User().CreateUser(ctx, repository.CreateUserParams{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hash,
		Role:           models.RoleClient,
	})
	if err != nil {
		return user, "", err
	}

	if _, err := s.accounts.CreateAccount(ctx, user.ID); err != nil {
		return user, "", fmt.Errorf("can't open account for new user. Err: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return user, "", err
	}

	return user, token, nil
}

// Login checks credentials and issues a bearer token.
// Bad email and bad password are deliberately indistinguishable to callers.
func (s *Service) Login(ctx context.Context, email string, password string) (models.User, string, error) {
	user, err := s.storage.User().GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", apperrors.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, "", apperrors.ErrUserNotFound
	}

	if !user.Active {
		return models.User{}, "", apperrors.ErrUserInactive
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// AuthenticateToken resolves a bearer token into the current user record
func (s *Service) AuthenticateToken(ctx context.Context, tokenString string) (models.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.storage.User().GetUserByID(ctx, claims.UserID)
	if err != nil {
		return models.User{}, err
	}

	if !user.Active {
		return models.User{}, apperrors.ErrUserInactive
	}

	return user, nil
}
