package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	maxUsernameLen = 64
	minPasswordLen = 6
)

// AuthService implements registration, login, and account maintenance on top
// of the credential store. It holds no mutable state; the signing secret and
// bcrypt cost are injected once at startup.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new account. The username uniqueness check happens in the
// store's unique index, not here, so two concurrent registrations of the same
// name resolve to exactly one ErrDuplicateUsername.
func (s *AuthService) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("%w: username", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password too short", ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// Login verifies credentials and returns a signed bearer token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", ErrAuthUnavailable
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, username, current, next string) error {
	if len(next) < minPasswordLen {
		return fmt.Errorf("%w: password too short", ErrValidation)
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidCredentials
		}
		return ErrAuthUnavailable
	}
	if !s.hasher.Verify(current, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, u.ID, hash)
}

// DeleteAccount removes the account. Outstanding tokens for it stay valid
// until expiry, but the verifier re-resolves the live account on every
// request, so they stop working immediately.
func (s *AuthService) DeleteAccount(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
