package auth

import "github.com/google/uuid"

// Profile is the projection of a user returned to its owner. It never
// carries the password hash or the refresh-token set.
type Profile struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Verified bool      `json:"verified"`
}

// PublicProfile is what other signed-in users may see.
type PublicProfile struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is the response shape of sign-in and refresh.
type Session struct {
	Profile Profile   `json:"profile"`
	Tokens  TokenPair `json:"tokens"`
}
