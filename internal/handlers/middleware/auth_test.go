package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rmazouri/bankcore/internal/handlers/userctx"
	"github.com/rmazouri/bankcore/internal/models"
)

type authServiceFunc func(ctx context.Context, token string) (models.User, error)

func (f authServiceFunc) AuthenticateToken(ctx context.Context, token string) (models.User, error) {
	return f(ctx, token)
}

func TestAuthMiddleware(t *testing.T) {
	knownUser := models.User{ID: uuid.New(), Email: "client@bank.test", Role: models.RoleClient}

	as := authServiceFunc(func(_ context.Context, token string) (models.User, error) {
		if token == "valid-token" {
			return knownUser, nil
		}
		return models.User{}, errors.New("unknown token")
	})

	var gotUser models.User
	var gotOk bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOk = userctx.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(AuthMiddleware(as)(next))
	defer srv.Close()

	doRequest := func(t *testing.T, authHeader string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/test", nil)
		require.NoError(t, err)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close() // nolint:errcheck
		return resp
	}

	t.Run("valid token passes user to handler", func(t *testing.T) {
		gotOk = false

		resp := doRequest(t, "Bearer valid-token")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, gotOk, "user should be stored in request context")
		require.Equal(t, knownUser.ID, gotUser.ID)
	})

	t.Run("no authorization header", func(t *testing.T) {
		resp := doRequest(t, "")

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("not a bearer scheme", func(t *testing.T) {
		resp := doRequest(t, "Basic dXNlcjpwYXNz")

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		resp := doRequest(t, "Bearer bad-token")

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	doRequest := func(t *testing.T, handler http.Handler, user *models.User) *http.Response {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if user != nil {
			req = req.WithContext(userctx.New(req.Context(), *user))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Result()
	}

	t.Run("allowed role", func(t *testing.T) {
		handler := RequireRole(models.RoleAgent, models.RoleAdmin)(next)
		agent := models.User{ID: uuid.New(), Role: models.RoleAgent}

		resp := doRequest(t, handler, &agent)

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("role not listed", func(t *testing.T) {
		handler := RequireRole(models.RoleAdmin)(next)
		client := models.User{ID: uuid.New(), Role: models.RoleClient}

		resp := doRequest(t, handler, &client)

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("no user in context", func(t *testing.T) {
		handler := RequireRole(models.RoleAdmin)(next)

		resp := doRequest(t, handler, nil)

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
