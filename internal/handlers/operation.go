package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmazouri/bankcore/internal/handlers/render"
	"github.com/rmazouri/bankcore/internal/logger"
	"github.com/rmazouri/bankcore/internal/service/operation"
)

func handleSubmitOperation(operationService operationService, l logger.Logger) http.Handler {
	type request struct {
		Type                 string          `json:"type" validate:"required"`
		Amount               decimal.Decimal `json:"amount" validate:"required"`
		SourceAccountID      *uuid.UUID      `json:"source_account_id"`
		DestinationAccountID *uuid.UUID      `json:"destination_account_id"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		op, err := operationService.Submit(r.Context(), operation.SubmitParams{
			Type:                 data.Type,
			Amount:               data.Amount,
			SourceAccountID:      data.SourceAccountID,
			DestinationAccountID: data.DestinationAccountID,
		}, user.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSONWithStatus(w, toOperationResponse(op), http.StatusCreated)
	})
}

func handleListMyOperations(operationService operationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		ops, err := operationService.ListUserOperations(r.Context(), user.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponses(ops))
	})
}

func handleGetMyOperation(operationService operationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		id, ok := operationID(w, r)
		if !ok {
			return
		}

		op, err := operationService.GetUserOperation(r.Context(), id, user.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponse(op))
	})
}

func handleListPendingOperations(operationService operationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ops, err := operationService.ListPendingOperations(r.Context())
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponses(ops))
	})
}

func handleListAllOperations(operationService operationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ops, err := operationService.ListOperations(r.Context())
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponses(ops))
	})
}

func handleGetOperation(operationService operationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := operationID(w, r)
		if !ok {
			return
		}

		op, err := operationService.GetOperation(r.Context(), id)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponse(op))
	})
}

func handleApproveOperation(operationService operationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		id, ok := operationID(w, r)
		if !ok {
			return
		}

		op, err := operationService.Approve(r.Context(), id, agent.ID)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponse(op))
	})
}

func handleRejectOperation(operationService operationService, l logger.Logger) http.Handler {
	type request struct {
		Reason string `json:"reason"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent, ok := userFromRequest(w, r)
		if !ok {
			return
		}

		id, ok := operationID(w, r)
		if !ok {
			return
		}

		// Body is optional, a missing reason falls back to the default note
		var reason string
		if r.Body != nil && r.ContentLength > 0 {
			data, err := render.BindAndValidate[request](w, r)
			if err != nil {
				return
			}
			reason = data.Reason
		}

		op, err := operationService.Reject(r.Context(), id, agent.ID, reason)
		if err != nil {
			renderError(w, l, err)
			return
		}

		render.JSON(w, toOperationResponse(op))
	})
}

func operationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return pathID(w, r, "Invalid operation id")
}
