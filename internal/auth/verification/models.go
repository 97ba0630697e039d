package verification

import (
	"time"

	"github.com/google/uuid"
)

// Purpose scopes a token to the flow that issued it. At most one live
// token exists per (owner, purpose).
type Purpose string

const (
	PurposeEmail Purpose = "email-verification"
	PurposeReset Purpose = "password-reset"
)

// TokenTTL is how long an unused token stays valid.
const TokenTTL = 24 * time.Hour

// Token is the persisted record. Only the hash of the raw value is
// stored; the raw value exists solely in the link mailed to the owner.
type Token struct {
	OwnerID   uuid.UUID
	Purpose   Purpose
	TokenHash string
	CreatedAt time.Time
}
