package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/infrastructure"
	"marketplace/internal/auth/user"
	"marketplace/internal/auth/verification"
)

// In-memory doubles for the storage and mail collaborators.

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUsers) Save(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return infrastructure.ErrEmailInUse
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, infrastructure.ErrUserNotFound
}

func (f *fakeUsers) ByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, infrastructure.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) SetVerified(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Verified = true
	}
	return nil
}

func (f *fakeUsers) AddToken(_ context.Context, id uuid.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Tokens = append(u.Tokens, token)
	}
	return nil
}

func (f *fakeUsers) RemoveToken(_ context.Context, id uuid.UUID, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	for i, t := range u.Tokens {
		if t == token {
			u.Tokens = append(u.Tokens[:i], u.Tokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) ReplaceToken(_ context.Context, id uuid.UUID, oldToken, newToken string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	for i, t := range u.Tokens {
		if t == oldToken {
			u.Tokens[i] = newToken
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) ClearTokens(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Tokens = nil
	}
	return nil
}

func (f *fakeUsers) tokensOf(id uuid.UUID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return append([]string(nil), u.Tokens...)
	}
	return nil
}

type tokenKey struct {
	owner   uuid.UUID
	purpose verification.Purpose
}

type issuedToken struct {
	raw       string
	createdAt time.Time
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[tokenKey]issuedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[tokenKey]issuedToken{}}
}

func (f *fakeTokenStore) Issue(_ context.Context, owner uuid.UUID, purpose verification.Purpose) (string, error) {
	raw, err := infrastructure.GenerateSecureToken(36)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenKey{owner, purpose}] = issuedToken{raw: raw, createdAt: time.Now()}
	return raw, nil
}

func (f *fakeTokenStore) Verify(_ context.Context, owner uuid.UUID, purpose verification.Purpose, raw string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.tokens[tokenKey{owner, purpose}]
	if !ok || time.Since(rec.createdAt) > verification.TokenTTL {
		return false, nil
	}
	return rec.raw == raw, nil
}

func (f *fakeTokenStore) Consume(_ context.Context, owner uuid.UUID, purpose verification.Purpose) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tokenKey{owner, purpose})
	return nil
}

type sentMail struct {
	to   string
	link string
}

type fakeMailer struct {
	mu            sync.Mutex
	verifications []sentMail
	resets        []sentMail
	verifyErr     error
	resetErr      error
}

func (f *fakeMailer) SendVerification(to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verifications = append(f.verifications, sentMail{to: to, link: link})
	return nil
}

func (f *fakeMailer) SendPasswordResetLink(to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resets = append(f.resets, sentMail{to: to, link: link})
	return nil
}

func (f *fakeMailer) lastVerification() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.verifications) == 0 {
		return sentMail{}, false
	}
	return f.verifications[len(f.verifications)-1], true
}

func (f *fakeMailer) lastReset() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resets) == 0 {
		return sentMail{}, false
	}
	return f.resets[len(f.resets)-1], true
}
