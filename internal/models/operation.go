package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OperationTypeDeposit    = "DEPOSIT"
	OperationTypeWithdrawal = "WITHDRAWAL"
	OperationTypeTransfer   = "TRANSFER"
)

const (
	OperationStatusPending  = "PENDING"
	OperationStatusApproved = "APPROVED"
	OperationStatusRejected = "REJECTED"
)

// Operation is a requested money movement.
// Exactly one of SourceAccountID/DestinationAccountID is nil for
// deposits and withdrawals, both are set for transfers.
// ExecutedAt is set if and only if balances actually moved.
type Operation struct {
	ID                   uuid.UUID
	CreatedAt            time.Time
	Type                 string
	Amount               decimal.Decimal
	Status               string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CreatedByID          uuid.UUID
	ApprovedByID         *uuid.UUID
	ApprovedAt           *time.Time
	ExecutedAt           *time.Time
	Note                 *string
}
