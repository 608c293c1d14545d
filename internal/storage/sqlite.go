package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spendwise/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store over a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies migrations. Use ":memory:" for an ephemeral database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Every pooled connection to :memory: would get its own database, so
	// pin the pool to one connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, passwordHash, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return core.User{}, ErrDuplicateUsername
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user insert id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", id, "username", username)
	return core.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	)
	return scanUser(row)
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?",
		id,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, ErrNotFound
		}
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)",
		token, userID, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetSession(ctx context.Context, token string) (core.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at FROM sessions WHERE token = ? AND expires_at > ?",
		token, time.Now().UTC(),
	)
	var sess core.Session
	if err := row.Scan(&sess.Token, &sess.UserID, &sess.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Session{}, ErrNotFound
		}
		return core.Session{}, fmt.Errorf("scan session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) RenewSession(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET expires_at = ? WHERE token = ?",
		expiresAt.UTC(), token,
	)
	if err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (s *SQLiteStore) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (user_id, description, amount_cents, date, category, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.UserID, e.Description, e.Amount.Cents, e.Date.String(), string(e.Category), createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"expense_id", id,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"category", string(e.Category))
	return id, nil
}

func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, description, amount_cents, date, category, created_at FROM expenses WHERE id = ?",
		id,
	)
	return scanExpenseRow(row.Scan)
}

func (s *SQLiteStore) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, description, amount_cents, date, category, created_at FROM expenses WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpenseRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *SQLiteStore) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET description = ?, amount_cents = ?, date = ?, category = ? WHERE id = ?",
		e.Description, e.Amount.Cents, e.Date.String(), string(e.Category), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanExpenseRow maps one expenses row to a core.Expense. The date column
// holds an ISO string or empty; unparseable values keep the zero date so
// sorting can fall back to insertion order.
func scanExpenseRow(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e       core.Expense
		dateStr string
		cat     string
	)
	if err := scan(&e.ID, &e.UserID, &e.Description, &e.Amount.Cents, &dateStr, &cat, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, ErrNotFound
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	e.Category = core.ParseCategory(cat)
	if dateStr != "" {
		if d, err := core.ParseDate(dateStr); err == nil {
			e.Date = d
		}
	}
	return e, nil
}
