package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmazouri/bankcore/internal/models"
)

type accountResponse struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAccountResponse(a models.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Number:    a.Number,
		OwnerID:   a.OwnerID,
		Balance:   a.Balance,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

func toAccountResponses(accounts []models.Account) []accountResponse {
	responses := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, toAccountResponse(a))
	}
	return responses
}

type operationResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Type                 string          `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	Status               string          `json:"status"`
	SourceAccountID      *uuid.UUID      `json:"source_account_id,omitempty"`
	DestinationAccountID *uuid.UUID      `json:"destination_account_id,omitempty"`
	CreatedByID          uuid.UUID       `json:"created_by"`
	ApprovedByID         *uuid.UUID      `json:"approved_by,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	ApprovedAt           *time.Time      `json:"approved_at,omitempty"`
	ExecutedAt           *time.Time      `json:"executed_at,omitempty"`
	Note                 *string         `json:"note,omitempty"`
}

func toOperationResponse(op models.Operation) operationResponse {
	return operationResponse{
		ID:                   op.ID,
		Type:                 op.Type,
		Amount:               op.Amount,
		Status:               op.Status,
		SourceAccountID:      op.SourceAccountID,
		DestinationAccountID: op.DestinationAccountID,
		CreatedByID:          op.CreatedByID,
		ApprovedByID:         op.ApprovedByID,
		CreatedAt:            op.CreatedAt,
		ApprovedAt:           op.ApprovedAt,
		ExecutedAt:           op.ExecutedAt,
		Note:                 op.Note,
	}
}

func toOperationResponses(ops []models.Operation) []operationResponse {
	responses := make([]operationResponse, 0, len(ops))
	for _, op := range ops {
		responses = append(responses, toOperationResponse(op))
	}
	return responses
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []models.User) []userResponse {
	responses := make([]userResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses
}
