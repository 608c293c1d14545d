package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spendwise/internal/auth"
	"spendwise/internal/core"
	"spendwise/internal/storage"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords
// so login failures are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService handles registration, login and session lifetime.
type UserService struct {
	store      storage.Store
	sessionTTL time.Duration
}

func NewUserService(store storage.Store, sessionTTL time.Duration) *UserService {
	return &UserService{store: store, sessionTTL: sessionTTL}
}

// Register creates a new user with a bcrypt-hashed password. Usernames are
// case-sensitive and must be unique.
func (s *UserService) Register(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.ErrEmptyUsername
	}
	if password == "" {
		return core.User{}, core.ErrEmptyPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.store.CreateUser(ctx, username, hash)
}

// Authenticate checks a username/password pair and returns the user on
// success.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (core.User, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.User{}, ErrInvalidCredentials
		}
		return core.User{}, fmt.Errorf("look up user: %w", err)
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return core.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// StartSession issues a fresh session token for the user.
func (s *UserService) StartSession(ctx context.Context, userID int64) (core.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return core.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.sessionTTL)
	if err := s.store.CreateSession(ctx, token, userID, expiresAt); err != nil {
		return core.Session{}, fmt.Errorf("create session: %w", err)
	}
	return core.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

// ValidateSession resolves a token to its user. Sessions past the halfway
// point of their lifetime are renewed in place, so active users never get
// logged out.
func (s *UserService) ValidateSession(ctx context.Context, token string) (core.User, core.Session, error) {
	sess, err := s.store.GetSession(ctx, token)
	if err != nil {
		return core.User{}, core.Session{}, err
	}

	if time.Until(sess.ExpiresAt) < s.sessionTTL/2 {
		renewed := time.Now().UTC().Add(s.sessionTTL)
		if err := s.store.RenewSession(ctx, token, renewed); err == nil {
			sess.ExpiresAt = renewed
		}
	}

	u, err := s.store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return core.User{}, core.Session{}, err
	}
	return u, sess, nil
}

// EndSession deletes a session. Unknown tokens are not an error.
func (s *UserService) EndSession(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// SweepSessions removes expired sessions. Meant to run periodically.
func (s *UserService) SweepSessions(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx)
}
