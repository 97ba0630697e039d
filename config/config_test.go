package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080/verify", cfg.VerificationLink)
	assert.Equal(t, "http://localhost:8080/reset-password", cfg.PasswordResetLink)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/marketplace")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/marketplace", cfg.DatabaseURL)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadConfigRejectsBadSMTPPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}
