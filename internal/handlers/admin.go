package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rmazouri/bankcore/internal/handlers/render"
	"github.com/rmazouri/bankcore/internal/logger"
	"github.com/rmazouri/bankcore/internal/models"
)

// Lifecycle actions (activate user, freeze account, ...) share one handler
// shape: parse the id, run the action, render the updated record
type userLifecycleAction func(ctx context.Context, id uuid.UUID) (models.User, error)
type accountLifecycleAction func(ctx context.Context, id uuid.UUID) (models.Account, error)

func handleListUsers(userService userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := userService.ListUsers(r.Context())
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toUserResponses(users))
	})
}

func handleUserLifecycle(l logger.Logger, action userLifecycleAction) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Invalid user id")
		if !ok {
			return
		}

		user, err := action(r.Context(), id)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toUserResponse(user))
	})
}

func handleUpdateUserRole(userService userService, l logger.Logger) http.Handler {
	type request struct {
		Role string `json:"role" validate:"required,oneof=CLIENT AGENT ADMIN"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Invalid user id")
		if !ok {
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := userService.UpdateUserRole(r.Context(), id, data.Role)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toUserResponse(user))
	})
}

func handleListAllAccounts(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := accountService.ListAccounts(r.Context())
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toAccountResponses(accounts))
	})
}

func handleGetAccountByNumber(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := accountService.GetAccountByNumber(r.Context(), r.PathValue("number"))
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toAccountResponse(account))
	})
}

func handleAccountLifecycle(l logger.Logger, action accountLifecycleAction) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Invalid account id")
		if !ok {
			return
		}

		account, err := action(r.Context(), id)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toAccountResponse(account))
	})
}

func pathID(w http.ResponseWriter, r *http.Request, badRequestMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, badRequestMsg, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
