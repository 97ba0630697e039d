package verification

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"marketplace/infrastructure"
)

// rawTokenBytes matches the entropy of the links the original flow
// mailed out: 36 random bytes, hex encoded.
const rawTokenBytes = 36

type Store interface {
	// Issue invalidates any live token for (owner, purpose) and returns
	// a fresh raw token. Callers embed the raw value in a link; it is
	// never persisted.
	Issue(ctx context.Context, owner uuid.UUID, purpose Purpose) (string, error)
	// Verify reports whether raw matches the live token. It fails closed
	// on absent or expired records and does not consume the token.
	Verify(ctx context.Context, owner uuid.UUID, purpose Purpose, raw string) (bool, error)
	// Consume deletes the live token for (owner, purpose).
	Consume(ctx context.Context, owner uuid.UUID, purpose Purpose) error
}

type PostgresStorage struct {
	db *sql.DB
}

func NewVerificationPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (r *PostgresStorage) Issue(ctx context.Context, owner uuid.UUID, purpose Purpose) (string, error) {
	raw, err := infrastructure.GenerateSecureToken(rawTokenBytes)
	if err != nil {
		return "", err
	}

	hash := hashToken(raw)
	err = infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			"DELETE FROM auth_tokens WHERE owner_id = $1 AND purpose = $2",
			owner, purpose); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO auth_tokens (owner_id, purpose, token_hash, created_at)
			VALUES ($1, $2, $3, $4)`,
			owner, purpose, hash, time.Now())
		return err
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (r *PostgresStorage) Verify(ctx context.Context, owner uuid.UUID, purpose Purpose, raw string) (bool, error) {
	rec := Token{OwnerID: owner, Purpose: purpose}
	err := r.db.QueryRowContext(ctx, `
		SELECT token_hash, created_at FROM auth_tokens
		WHERE owner_id = $1 AND purpose = $2`,
		owner, purpose).Scan(&rec.TokenHash, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if time.Since(rec.CreatedAt) > TokenTTL {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(hashToken(raw)), []byte(rec.TokenHash)) == 1, nil
}

func (r *PostgresStorage) Consume(ctx context.Context, owner uuid.UUID, purpose Purpose) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM auth_tokens WHERE owner_id = $1 AND purpose = $2",
		owner, purpose)
	return err
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
