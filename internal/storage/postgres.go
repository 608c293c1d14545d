package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise/internal/core"
)

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		date TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
}

// PostgresStore implements Store over a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to connURL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	u := core.User{Username: username, PasswordHash: passwordHash}
	err := s.pool.QueryRow(ctx,
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at",
		username, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.User{}, ErrDuplicateUsername
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", u.ID, "username", username)
	return u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := s.pool.QueryRow(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.User{}, ErrNotFound
		}
		return core.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := s.pool.QueryRow(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.User{}, ErrNotFound
		}
		return core.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)",
		token, userID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, token string) (core.Session, error) {
	var sess core.Session
	err := s.pool.QueryRow(ctx,
		"SELECT token, user_id, expires_at FROM sessions WHERE token = $1 AND expires_at > now()",
		token,
	).Scan(&sess.Token, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Session{}, ErrNotFound
		}
		return core.Session{}, fmt.Errorf("query session: %w", err)
	}
	return sess, nil
}

func (s *PostgresStore) RenewSession(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		"UPDATE sessions SET expires_at = $1 WHERE token = $2",
		expiresAt, token,
	)
	if err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sessions WHERE expires_at <= now()")
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO expenses (user_id, description, amount_cents, date, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.UserID, e.Description, e.Amount.Cents, e.Date.String(), string(e.Category), createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"expense_id", id,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"category", string(e.Category))
	return id, nil
}

func (s *PostgresStore) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT id, user_id, description, amount_cents, date, category, created_at FROM expenses WHERE id = $1",
		id,
	)
	e, err := scanExpenseRow(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Expense{}, ErrNotFound
		}
		return core.Expense{}, err
	}
	return e, nil
}

func (s *PostgresStore) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, user_id, description, amount_cents, date, category, created_at FROM expenses WHERE user_id = $1",
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

func (s *PostgresStore) UpdateExpense(ctx context.Context, e core.Expense) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE expenses SET description = $1, amount_cents = $2, date = $3, category = $4 WHERE id = $5",
		e.Description, e.Amount.Cents, e.Date.String(), string(e.Category), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteExpense(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
