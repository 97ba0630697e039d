package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBodyEmbedsLink(t *testing.T) {
	sender := NewEmailSender("smtp.test", 587, "user", "pass", "noreply@test")

	body, err := renderBody(sender.verifyTpl, "http://app.test/verify?id=1&token=abc")
	require.NoError(t, err)
	assert.Contains(t, body, `href="http://app.test/verify?id=1&amp;token=abc"`)
	assert.Contains(t, body, "verify your account")

	body, err = renderBody(sender.resetTpl, "http://app.test/reset-password?id=1&token=abc")
	require.NoError(t, err)
	assert.Contains(t, body, "reset your password")
}

func TestRenderBodyEscapesLink(t *testing.T) {
	sender := NewEmailSender("smtp.test", 587, "user", "pass", "noreply@test")

	body, err := renderBody(sender.verifyTpl, `"><script>alert(1)</script>`)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
