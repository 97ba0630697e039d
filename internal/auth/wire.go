package auth

import (
	"database/sql"

	"github.com/google/wire"

	"marketplace/config"
	"marketplace/internal/auth/user"
	"marketplace/internal/auth/verification"
	"marketplace/internal/email"
)

// ProvideUserStorage is a Wire provider function that creates a user.PostgresStorage
func ProvideUserStorage(db *sql.DB) *user.PostgresStorage {
	return user.NewUserPostgresStorage(db)
}

// ProvideVerificationStorage is a Wire provider function that creates a verification.PostgresStorage
func ProvideVerificationStorage(db *sql.DB) *verification.PostgresStorage {
	return verification.NewVerificationPostgresStorage(db)
}

// ProvideTokenIssuer is a Wire provider function that creates a TokenIssuer
func ProvideTokenIssuer(cfg *config.Config) *TokenIssuer {
	return NewTokenIssuer(cfg.JWTSecret)
}

// ProvideService is a Wire provider function that creates the auth Service
func ProvideService(
	cfg *config.Config,
	storage *user.PostgresStorage,
	tokens *verification.PostgresStorage,
	issuer *TokenIssuer,
	sender *email.Sender,
) *Service {
	return NewService(storage, storage, storage, tokens, issuer, sender,
		cfg.VerificationLink, cfg.PasswordResetLink)
}

// ProvideGate is a Wire provider function that creates the auth Gate
func ProvideGate(
	issuer *TokenIssuer,
	storage *user.PostgresStorage,
	tokens *verification.PostgresStorage,
) *Gate {
	return NewGate(issuer, storage, tokens)
}

// ProvideHandler is a Wire provider function that creates the auth Handler
func ProvideHandler(service *Service) *Handler {
	return NewHandler(service)
}

var Set = wire.NewSet(
	ProvideUserStorage,
	ProvideVerificationStorage,
	ProvideTokenIssuer,
	ProvideService,
	ProvideGate,
	ProvideHandler,
)
