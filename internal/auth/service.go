package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"marketplace/infrastructure"
	"marketplace/internal/auth/user"
	"marketplace/internal/auth/verification"
)

const bcryptCost = 12

// Mailer is the outbound mail collaborator. Sends are awaited; a
// failed send fails the operation that requested it.
type Mailer interface {
	SendVerification(email, link string) error
	SendPasswordResetLink(email, link string) error
}

// Service orchestrates the account lifecycle: sign-up, email
// verification, sign-in, refresh rotation, sign-out and password-reset
// requests.
type Service struct {
	saver    user.Saver
	updater  user.Updater
	provider user.Provider
	tokens   verification.Store
	issuer   *TokenIssuer
	mailer   Mailer

	verificationLink string
	resetLink        string
}

func NewService(
	saver user.Saver,
	updater user.Updater,
	provider user.Provider,
	tokens verification.Store,
	issuer *TokenIssuer,
	mailer Mailer,
	verificationLink, resetLink string,
) *Service {
	return &Service{
		saver:            saver,
		updater:          updater,
		provider:         provider,
		tokens:           tokens,
		issuer:           issuer,
		mailer:           mailer,
		verificationLink: verificationLink,
		resetLink:        resetLink,
	}
}

// SignUp creates an unverified account and mails a verification link.
// The mail send is awaited so the caller learns about delivery failure.
func (s *Service) SignUp(ctx context.Context, name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Verified:     false,
		Tokens:       pq.StringArray{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.saver.Save(ctx, newUser); err != nil {
		return err
	}

	return s.sendVerificationLink(ctx, newUser.ID, newUser.Email)
}

// VerifyEmail consumes a live verification token and marks the account
// verified. A spent or mismatched token is indistinguishable from an
// absent one.
func (s *Service) VerifyEmail(ctx context.Context, userID uuid.UUID, rawToken string) error {
	ok, err := s.tokens.Verify(ctx, userID, verification.PurposeEmail, rawToken)
	if err != nil {
		return err
	}
	if !ok {
		return infrastructure.ErrUnauthorized
	}

	if err := s.updater.SetVerified(ctx, userID); err != nil {
		return err
	}
	return s.tokens.Consume(ctx, userID, verification.PurposeEmail)
}

// RequestVerificationLink reissues the verification token for an
// already signed-in account, invalidating any previous link.
func (s *Service) RequestVerificationLink(ctx context.Context, userID uuid.UUID, email string) error {
	return s.sendVerificationLink(ctx, userID, email)
}

// SignIn exchanges credentials for a token pair. The failure is the
// same whichever of email or password was wrong. Unverified accounts
// can sign in; verification gates nothing here.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	found, err := s.provider.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, infrastructure.ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return nil, infrastructure.ErrUnauthorized
	}

	refreshToken, err := s.issuer.IssueRefreshToken(found.ID)
	if err != nil {
		return nil, err
	}
	if err := s.updater.AddToken(ctx, found.ID, refreshToken); err != nil {
		return nil, err
	}

	return s.newSession(found, refreshToken)
}

// Refresh rotates a refresh token: the presented token is atomically
// replaced by a fresh one and a new access token is minted. A validly
// signed token that is no longer in the user's set means it was already
// rotated away; that replay wipes every outstanding token for the
// account and forces a full re-authentication.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*Session, error) {
	userID, err := s.issuer.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	found, err := s.provider.ByID(ctx, userID)
	if err != nil {
		return nil, infrastructure.ErrUnauthorized
	}

	if !containsToken(found.Tokens, rawToken) {
		return nil, s.revokeAll(ctx, userID)
	}

	newRefreshToken, err := s.issuer.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	swapped, err := s.updater.ReplaceToken(ctx, userID, rawToken, newRefreshToken)
	if err != nil {
		return nil, err
	}
	if !swapped {
		// Lost the rotation race: someone exchanged this token first.
		return nil, s.revokeAll(ctx, userID)
	}

	return s.newSession(found, newRefreshToken)
}

// SignOut removes the presented refresh token only; sessions on other
// devices stay valid.
func (s *Service) SignOut(ctx context.Context, userID uuid.UUID, rawToken string) error {
	removed, err := s.updater.RemoveToken(ctx, userID, rawToken)
	if err != nil {
		return err
	}
	if !removed {
		return infrastructure.ErrUnauthorized
	}
	return nil
}

// RequestPasswordReset mails a reset link. An unknown email is reported
// as not found, matching the existing client contract.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	found, err := s.provider.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	raw, err := s.tokens.Issue(ctx, found.ID, verification.PurposeReset)
	if err != nil {
		return err
	}

	return s.mailer.SendPasswordResetLink(found.Email, buildLink(s.resetLink, found.ID, raw))
}

// IsValidResetToken checks a reset link without consuming it, so a
// client can validate the link before showing the reset form.
func (s *Service) IsValidResetToken(ctx context.Context, userID uuid.UUID, rawToken string) (bool, error) {
	return s.tokens.Verify(ctx, userID, verification.PurposeReset, rawToken)
}

// PublicProfile returns the projection of another account that any
// signed-in user may see.
func (s *Service) PublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	found, err := s.provider.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{ID: found.ID, Name: found.Name}, nil
}

func (s *Service) sendVerificationLink(ctx context.Context, userID uuid.UUID, email string) error {
	raw, err := s.tokens.Issue(ctx, userID, verification.PurposeEmail)
	if err != nil {
		return err
	}
	return s.mailer.SendVerification(email, buildLink(s.verificationLink, userID, raw))
}

func (s *Service) newSession(found *user.User, refreshToken string) (*Session, error) {
	accessToken, err := s.issuer.IssueAccessToken(found.ID)
	if err != nil {
		return nil, err
	}
	return &Session{
		Profile: Profile{
			ID:       found.ID,
			Email:    found.Email,
			Name:     found.Name,
			Verified: found.Verified,
		},
		Tokens: TokenPair{Access: accessToken, Refresh: refreshToken},
	}, nil
}

func (s *Service) revokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.updater.ClearTokens(ctx, userID); err != nil {
		return err
	}
	return infrastructure.ErrUnauthorized
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func buildLink(base string, userID uuid.UUID, rawToken string) string {
	return fmt.Sprintf("%s?id=%s&token=%s", base, userID, url.QueryEscape(rawToken))
}
