// Package storage persists users, sessions and expenses. Two
// implementations exist: SQLite (default) and Postgres, selected through
// the backend factory.
package storage

import (
	"context"
	"errors"
	"time"

	"spendwise/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store is the persistence contract the rest of the application depends
// on. Implementations provide last-write-wins per-record consistency and
// no cross-record transactions; callers must not assume more.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
	GetUserByUsername(ctx context.Context, username string) (core.User, error)
	GetUserByID(ctx context.Context, id int64) (core.User, error)

	CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// GetSession returns the session for token if it has not expired.
	GetSession(ctx context.Context, token string) (core.Session, error)
	RenewSession(ctx context.Context, token string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	CreateExpense(ctx context.Context, e core.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	// ListExpenses returns all expenses owned by userID in no guaranteed
	// order; callers sort.
	ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error

	Close() error
}
