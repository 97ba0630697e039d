package infrastructure

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailInUse   = errors.New("email is already in use")
	ErrUnauthorized = errors.New("unauthorized request")

	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrTokenExpired = errors.New("access token has expired")
)

// ValidationError carries a message that is safe to surface verbatim
// to the client, unlike the generic sentinels above.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
