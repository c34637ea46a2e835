package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "CLIENT"
	RoleAgent  = "AGENT"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Email          string
	FullName       string
	HashedPassword string
	Role           string
	Active         bool
}
