package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"marketplace/infrastructure"
)

const uniqueViolation = "23505"

type Saver interface {
	Save(ctx context.Context, user *User) error
}

type Updater interface {
	SetVerified(ctx context.Context, id uuid.UUID) error
	AddToken(ctx context.Context, id uuid.UUID, token string) error
	RemoveToken(ctx context.Context, id uuid.UUID, token string) (bool, error)
	ReplaceToken(ctx context.Context, id uuid.UUID, oldToken, newToken string) (bool, error)
	ClearTokens(ctx context.Context, id uuid.UUID) error
}

type Provider interface {
	ByEmail(ctx context.Context, email string) (*User, error)
	ByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewUserPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (r *PostgresStorage) Save(ctx context.Context, user *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, verified, tokens, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Verified,
		user.Tokens, user.CreatedAt, user.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return infrastructure.ErrEmailInUse
	}
	return err
}

func (r *PostgresStorage) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, verified, tokens, created_at, updated_at
		FROM users WHERE email = $1`, email))
}

func (r *PostgresStorage) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, verified, tokens, created_at, updated_at
		FROM users WHERE id = $1`, id))
}

func (r *PostgresStorage) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Verified, &user.Tokens, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, infrastructure.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresStorage) SetVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET verified = TRUE, updated_at = $1 WHERE id = $2",
		time.Now(), id)
	return err
}

func (r *PostgresStorage) AddToken(ctx context.Context, id uuid.UUID, token string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET tokens = array_append(tokens, $1), updated_at = $2
		WHERE id = $3`,
		token, time.Now(), id)
	return err
}

// RemoveToken deletes a single refresh token from the user's set. The
// membership guard makes the statement a compare-and-swap: it reports
// false when the token had already been removed by a concurrent call.
func (r *PostgresStorage) RemoveToken(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET tokens = array_remove(tokens, $1), updated_at = $2
		WHERE id = $3 AND $1 = ANY(tokens)`,
		token, time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReplaceToken rotates oldToken to newToken in one atomic statement so
// two concurrent refresh calls can never both succeed with the same
// old token.
func (r *PostgresStorage) ReplaceToken(ctx context.Context, id uuid.UUID, oldToken, newToken string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET tokens = array_replace(tokens, $1, $2), updated_at = $3
		WHERE id = $4 AND $1 = ANY(tokens)`,
		oldToken, newToken, time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresStorage) ClearTokens(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET tokens = '{}', updated_at = $1 WHERE id = $2",
		time.Now(), id)
	return err
}
