package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"marketplace/infrastructure"
	"marketplace/internal/auth/user"
	"marketplace/internal/auth/verification"
)

type contextKey int

const (
	identityKey contextKey = iota
	resetRequestKey
)

// Identity is the projection attached to the request context for
// handlers behind the access-token gate.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Verified bool
}

// UserFromContext returns the identity injected by RequireAccessToken.
func UserFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// ResetRequestFromContext returns the body already parsed and validated
// by RequireValidResetToken.
func ResetRequestFromContext(ctx context.Context) (VerifyTokenRequest, bool) {
	req, ok := ctx.Value(resetRequestKey).(VerifyTokenRequest)
	return req, ok
}

// Gate guards routes that need a bearer access token or a valid
// password-reset token.
type Gate struct {
	issuer *TokenIssuer
	users  user.Provider
	tokens verification.Store
}

func NewGate(issuer *TokenIssuer, users user.Provider, tokens verification.Store) *Gate {
	return &Gate{issuer: issuer, users: users, tokens: tokens}
}

// RequireAccessToken verifies the Authorization header and resolves the
// subject against the credential store. Expiry and signature failures
// are reported distinctly (401 session expired vs 401 unauthorized);
// a missing header or a vanished user yields 403.
func (g *Gate) RequireAccessToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			infrastructure.WriteError(w, infrastructure.ErrMissingToken)
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			infrastructure.WriteError(w, infrastructure.ErrMissingToken)
			return
		}

		userID, err := g.issuer.Verify(tokenString)
		if err != nil {
			infrastructure.WriteError(w, err)
			return
		}

		account, err := g.users.ByID(r.Context(), userID)
		if err != nil {
			infrastructure.WriteError(w, infrastructure.ErrUnauthorized)
			return
		}

		identity := Identity{
			ID:       account.ID,
			Email:    account.Email,
			Name:     account.Name,
			Verified: account.Verified,
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireValidResetToken validates the {id, token} body against the
// live reset token without consuming it, and stashes the parsed body
// in the context for the next handler.
func (g *Gate) RequireValidResetToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			infrastructure.WriteError(w, infrastructure.NewValidationError("invalid request body!"))
			return
		}
		if err := req.Validate(); err != nil {
			infrastructure.WriteError(w, err)
			return
		}

		ok, err := g.tokens.Verify(r.Context(), req.OwnerID(), verification.PurposeReset, req.Token)
		if err != nil {
			infrastructure.WriteError(w, err)
			return
		}
		if !ok {
			infrastructure.WriteError(w, infrastructure.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), resetRequestKey, req)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
