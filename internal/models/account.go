package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AccountStatusActive = "ACTIVE"
	AccountStatusFrozen = "FROZEN"
	AccountStatusClosed = "CLOSED"
)

// Account balance is mutated only while an operation executes and only
// while the account is ACTIVE.
type Account struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Number    string
	OwnerID   uuid.UUID
	Balance   decimal.Decimal
	Status    string
}
