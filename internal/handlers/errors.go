package handlers

import (
	"errors"
	"net/http"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/handlers/render"
	"github.com/rmazouri/bankcore/internal/logger"
)

// renderError maps well known service errors to HTTP statuses.
// Anything unrecognized is an internal error and gets logged.
func renderError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrOperationNotFound):
		render.ServiceError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, apperrors.ErrOperationTypeInvalid),
		errors.Is(err, apperrors.ErrOperationAccountRequired),
		errors.Is(err, apperrors.ErrOperationAmountInvalid),
		errors.Is(err, apperrors.ErrRoleInvalid):
		render.ServiceError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, apperrors.ErrAccountNotOwned),
		errors.Is(err, apperrors.ErrOperationNotOwned):
		render.ServiceError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, apperrors.ErrAccountNotActive),
		errors.Is(err, apperrors.ErrBalanceInsufficient),
		errors.Is(err, apperrors.ErrOperationNotPending),
		errors.Is(err, apperrors.ErrUserInactive),
		errors.Is(err, apperrors.ErrUserAlreadyExists):
		render.ServiceError(w, err.Error(), http.StatusConflict)

	default:
		l.Error("request failed", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}
