package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rmazouri/bankcore/internal/handlers/render"
	"github.com/rmazouri/bankcore/internal/logger"
)

func handleCreateAccount(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		account, err := accountService.CreateAccount(r.Context(), user.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSONWithStatus(w, toAccountResponse(account), http.StatusCreated)
	})
}

func handleListMyAccounts(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		accounts, err := accountService.ListUserAccounts(r.Context(), user.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toAccountResponses(accounts))
	})
}

func handleGetMyAccount(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid account id", http.StatusBadRequest)
			return
		}

		account, err := accountService.GetUserAccount(r.Context(), id, user.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toAccountResponse(account))
	})
}
