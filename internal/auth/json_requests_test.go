package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSignUpRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignUpRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  SignUpRequest{Name: "Alice", Email: "alice@x.com", Password: "correct horse battery"},
		},
		{
			name:    "missing name",
			req:     SignUpRequest{Email: "alice@x.com", Password: "correct horse battery"},
			wantErr: "name is missing!",
		},
		{
			name:    "missing email",
			req:     SignUpRequest{Name: "Alice", Password: "correct horse battery"},
			wantErr: "email is missing!",
		},
		{
			name:    "invalid email",
			req:     SignUpRequest{Name: "Alice", Email: "not-an-email", Password: "correct horse battery"},
			wantErr: "invalid email!",
		},
		{
			name:    "missing password",
			req:     SignUpRequest{Name: "Alice", Email: "alice@x.com"},
			wantErr: "password is missing!",
		},
		{
			name:    "short password",
			req:     SignUpRequest{Name: "Alice", Email: "alice@x.com", Password: "short"},
			wantErr: "password should be at least 8 chars long!",
		},
		{
			name:    "weak password",
			req:     SignUpRequest{Name: "Alice", Email: "alice@x.com", Password: "aaaaaaaa"},
			wantErr: "password is too weak!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestSignInRequestValidate(t *testing.T) {
	assert.NoError(t, (&SignInRequest{Email: "a@x.com", Password: "pw"}).Validate())
	assert.Error(t, (&SignInRequest{Password: "pw"}).Validate())
	assert.Error(t, (&SignInRequest{Email: "a@x.com"}).Validate())
}

func TestVerifyTokenRequestValidate(t *testing.T) {
	id := uuid.New()

	valid := &VerifyTokenRequest{ID: id.String(), Token: "raw"}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, id, valid.OwnerID())

	assert.Error(t, (&VerifyTokenRequest{ID: "nope", Token: "raw"}).Validate())
	assert.Error(t, (&VerifyTokenRequest{ID: id.String()}).Validate())
}

func TestRefreshTokenRequestValidate(t *testing.T) {
	assert.NoError(t, (&RefreshTokenRequest{RefreshToken: "tok"}).Validate())
	assert.Error(t, (&RefreshTokenRequest{}).Validate())
}

func TestForgetPasswordRequestValidate(t *testing.T) {
	assert.NoError(t, (&ForgetPasswordRequest{Email: "a@x.com"}).Validate())
	assert.Error(t, (&ForgetPasswordRequest{}).Validate())
	assert.Error(t, (&ForgetPasswordRequest{Email: "nope"}).Validate())
}
