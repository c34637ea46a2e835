package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rmazouri/bankcore/internal/handlers/middleware"
	"github.com/rmazouri/bankcore/internal/logger"
	"github.com/rmazouri/bankcore/internal/models"
	"github.com/rmazouri/bankcore/internal/service/operation"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	accountService accountService,
	operationService operationService,
	userService userService,
	logger logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(authService)
	agentOnly := middleware.RequireRole(models.RoleAgent, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	apiauth := http.NewServeMux()
	apiauth.Handle("POST /register", handleRegister(authService, logger))
	apiauth.Handle("POST /login", handleLogin(authService, logger))
	apiauth.Handle("GET /me", withAuth(handleMe()))

	apiclient := http.NewServeMux()
	apiclient.Handle("POST /accounts", handleCreateAccount(accountService, logger))
	apiclient.Handle("GET /accounts", handleListMyAccounts(accountService, logger))
	apiclient.Handle("GET /accounts/{id}", handleGetMyAccount(accountService, logger))
	apiclient.Handle("POST /operations", handleSubmitOperation(operationService, logger))
	apiclient.Handle("GET /operations", handleListMyOperations(operationService, logger))
	apiclient.Handle("GET /operations/{id}", handleGetMyOperation(operationService, logger))

	apiagent := http.NewServeMux()
	apiagent.Handle("GET /operations", handleListAllOperations(operationService, logger))
	apiagent.Handle("GET /operations/pending", handleListPendingOperations(operationService, logger))
	apiagent.Handle("GET /operations/{id}", handleGetOperation(operationService, logger))
	apiagent.Handle("PUT /operations/{id}/approve", handleApproveOperation(operationService, logger))
	apiagent.Handle("PUT /operations/{id}/reject", handleRejectOperation(operationService, logger))

	apiadmin := http.NewServeMux()
	apiadmin.Handle("GET /users", handleListUsers(userService, logger))
	apiadmin.Handle("PUT /users/{id}/activate", handleUserLifecycle(logger, userService.ActivateUser))
	apiadmin.Handle("PUT /users/{id}/deactivate", handleUserLifecycle(logger, userService.DeactivateUser))
	apiadmin.Handle("PUT /users/{id}/role", handleUpdateUserRole(userService, logger))
	apiadmin.Handle("GET /accounts", handleListAllAccounts(accountService, logger))
	apiadmin.Handle("GET /accounts/number/{number}", handleGetAccountByNumber(accountService, logger))
	apiadmin.Handle("PUT /accounts/{id}/freeze", handleAccountLifecycle(logger, accountService.FreezeAccount))
	apiadmin.Handle("PUT /accounts/{id}/activate", handleAccountLifecycle(logger, accountService.ActivateAccount))
	apiadmin.Handle("PUT /accounts/{id}/close", handleAccountLifecycle(logger, accountService.CloseAccount))

	root := http.NewServeMux()
	root.Handle("/api/auth/", http.StripPrefix("/api/auth", apiauth))
	root.Handle("/api/client/", http.StripPrefix("/api/client", chain(apiclient, withAuth)))
	root.Handle("/api/agent/", http.StripPrefix("/api/agent", chain(apiagent, withAuth, agentOnly)))
	root.Handle("/api/admin/", http.StripPrefix("/api/admin", chain(apiadmin, withAuth, adminOnly)))

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type authService interface {
	// Register a client with email, name and password
	// Has to return apperrors.ErrUserAlreadyExists if the email is taken
	Register(ctx context.Context, email string, fullName string, password string) (models.User, string, error)

	// Login with email and password
	// Has to return apperrors.ErrUserNotFound on bad credentials
	Login(ctx context.Context, email string, password string) (models.User, string, error)

	// Resolve a bearer token into the current user
	AuthenticateToken(ctx context.Context, token string) (models.User, error)
}

type accountService interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID) (models.Account, error)
	GetUserAccount(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (models.Account, error)
	ListUserAccounts(ctx context.Context, userID uuid.UUID) ([]models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	FreezeAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
	ActivateAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
	CloseAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
}

type operationService interface {
	Submit(ctx context.Context, arg operation.SubmitParams, requesterID uuid.UUID) (models.Operation, error)
	Approve(ctx context.Context, opID uuid.UUID, agentID uuid.UUID) (models.Operation, error)
	Reject(ctx context.Context, opID uuid.UUID, agentID uuid.UUID, reason string) (models.Operation, error)
	GetOperation(ctx context.Context, opID uuid.UUID) (models.Operation, error)
	GetUserOperation(ctx context.Context, opID uuid.UUID, userID uuid.UUID) (models.Operation, error)
	ListUserOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error)
	ListPendingOperations(ctx context.Context) ([]models.Operation, error)
	ListOperations(ctx context.Context) ([]models.Operation, error)
}

type userService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ActivateUser(ctx context.Context, id uuid.UUID) (models.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) (models.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (models.User, error)
}
