package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is the persisted credential record. Tokens holds every refresh
// token currently honored for the account; membership is what makes a
// signed refresh token revocable.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Verified     bool
	Tokens       pq.StringArray
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
