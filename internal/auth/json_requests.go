package auth

import (
	"net/mail"

	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"

	"marketplace/infrastructure"
)

const passwordMinEntropyBits = 30

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignUpRequest) Validate() error {
	if r.Name == "" {
		return infrastructure.NewValidationError("name is missing!")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return infrastructure.NewValidationError("password is missing!")
	}
	if len(r.Password) < 8 {
		return infrastructure.NewValidationError("password should be at least 8 chars long!")
	}
	if err := passwordvalidator.Validate(r.Password, passwordMinEntropyBits); err != nil {
		return infrastructure.NewValidationError("password is too weak!")
	}
	return nil
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return infrastructure.NewValidationError("password is missing!")
	}
	return nil
}

// VerifyTokenRequest is shared by email verification and reset-link
// validation; both carry the owner id and the raw token from the link.
type VerifyTokenRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

func (r *VerifyTokenRequest) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return infrastructure.NewValidationError("invalid user id!")
	}
	if r.Token == "" {
		return infrastructure.NewValidationError("token is missing!")
	}
	return nil
}

// OwnerID must only be called after Validate.
func (r *VerifyTokenRequest) OwnerID() uuid.UUID {
	return uuid.MustParse(r.ID)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Validate() error {
	if r.RefreshToken == "" {
		return infrastructure.NewValidationError("refresh token is missing!")
	}
	return nil
}

type ForgetPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgetPasswordRequest) Validate() error {
	return validateEmail(r.Email)
}

func validateEmail(email string) error {
	if email == "" {
		return infrastructure.NewValidationError("email is missing!")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return infrastructure.NewValidationError("invalid email!")
	}
	return nil
}
