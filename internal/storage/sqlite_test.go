package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"spendwise/internal/core"
)

type SQLiteStoreTestSuite struct {
	suite.Suite
	store *SQLiteStore
	ctx   context.Context
}

func (s *SQLiteStoreTestSuite) SetupTest() {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(s.T(), err, "failed to create test database")
	s.store = store
	s.ctx = context.Background()
}

func (s *SQLiteStoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *SQLiteStoreTestSuite) mustCreateUser(username string) core.User {
	u, err := s.store.CreateUser(s.ctx, username, "hash")
	require.NoError(s.T(), err)
	return u
}

func (s *SQLiteStoreTestSuite) TestCreateUser() {
	u := s.mustCreateUser("alice")
	assert.NotZero(s.T(), u.ID)
	assert.Equal(s.T(), "alice", u.Username)

	got, err := s.store.GetUserByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, got.ID)

	byID, err := s.store.GetUserByID(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", byID.Username)
}

func (s *SQLiteStoreTestSuite) TestDuplicateUsername() {
	s.mustCreateUser("alice")
	_, err := s.store.CreateUser(s.ctx, "alice", "otherhash")
	assert.ErrorIs(s.T(), err, ErrDuplicateUsername)
}

func (s *SQLiteStoreTestSuite) TestGetUserNotFound() {
	_, err := s.store.GetUserByUsername(s.ctx, "nobody")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	_, err = s.store.GetUserByID(s.ctx, 9999)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *SQLiteStoreTestSuite) TestSessions() {
	u := s.mustCreateUser("alice")

	err := s.store.CreateSession(s.ctx, "tok", u.ID, time.Now().Add(time.Hour))
	require.NoError(s.T(), err)

	sess, err := s.store.GetSession(s.ctx, "tok")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, sess.UserID)

	require.NoError(s.T(), s.store.DeleteSession(s.ctx, "tok"))
	_, err = s.store.GetSession(s.ctx, "tok")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *SQLiteStoreTestSuite) TestExpiredSessionNotReturned() {
	u := s.mustCreateUser("alice")

	err := s.store.CreateSession(s.ctx, "old", u.ID, time.Now().Add(-time.Minute))
	require.NoError(s.T(), err)

	_, err = s.store.GetSession(s.ctx, "old")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	n, err := s.store.DeleteExpiredSessions(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), n)
}

func (s *SQLiteStoreTestSuite) TestRenewSession() {
	u := s.mustCreateUser("alice")

	err := s.store.CreateSession(s.ctx, "tok", u.ID, time.Now().Add(time.Minute))
	require.NoError(s.T(), err)

	newExpiry := time.Now().Add(48 * time.Hour)
	require.NoError(s.T(), s.store.RenewSession(s.ctx, "tok", newExpiry))

	sess, err := s.store.GetSession(s.ctx, "tok")
	require.NoError(s.T(), err)
	assert.WithinDuration(s.T(), newExpiry, sess.ExpiresAt, 2*time.Second)
}

func (s *SQLiteStoreTestSuite) TestExpenseRoundTrip() {
	u := s.mustCreateUser("alice")

	e := core.Expense{
		UserID:      u.ID,
		Description: "Morning coffee",
		Amount:      core.Money{Cents: 350},
		Date:        core.NewDate(2025, 3, 14),
		Category:    core.CategoryFood,
	}
	id, err := s.store.CreateExpense(s.ctx, e)
	require.NoError(s.T(), err)

	got, err := s.store.GetExpense(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Morning coffee", got.Description)
	assert.Equal(s.T(), int64(350), got.Amount.Cents)
	assert.Equal(s.T(), core.CategoryFood, got.Category)
	assert.Equal(s.T(), "2025-03-14", got.Date.String())
	assert.Equal(s.T(), u.ID, got.UserID)
	assert.False(s.T(), got.CreatedAt.IsZero())
}

func (s *SQLiteStoreTestSuite) TestUpdateExpenseReflectsExactlyUpdatedFields() {
	u := s.mustCreateUser("alice")

	id, err := s.store.CreateExpense(s.ctx, core.Expense{
		UserID:      u.ID,
		Description: "Taxi home",
		Amount:      core.Money{Cents: 1500},
		Date:        core.NewDate(2025, 3, 14),
		Category:    core.CategoryTransport,
	})
	require.NoError(s.T(), err)

	before, err := s.store.GetExpense(s.ctx, id)
	require.NoError(s.T(), err)

	updated := before
	updated.Description = "Taxi to airport"
	updated.Amount = core.Money{Cents: 4200}
	updated.Category = core.CategoryTransport
	require.NoError(s.T(), s.store.UpdateExpense(s.ctx, updated))

	after, err := s.store.GetExpense(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Taxi to airport", after.Description)
	assert.Equal(s.T(), int64(4200), after.Amount.Cents)
	// Unedited fields unchanged.
	assert.Equal(s.T(), before.UserID, after.UserID)
	assert.Equal(s.T(), before.Date.String(), after.Date.String())
	assert.Equal(s.T(), before.CreatedAt.Unix(), after.CreatedAt.Unix())
}

func (s *SQLiteStoreTestSuite) TestDeleteExpense() {
	u := s.mustCreateUser("alice")

	id, err := s.store.CreateExpense(s.ctx, core.Expense{
		UserID:      u.ID,
		Description: "Snacks",
		Amount:      core.Money{Cents: 200},
		Category:    core.CategoryFood,
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.store.DeleteExpense(s.ctx, id))
	_, err = s.store.GetExpense(s.ctx, id)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	assert.ErrorIs(s.T(), s.store.DeleteExpense(s.ctx, id), ErrNotFound)
	assert.ErrorIs(s.T(), s.store.UpdateExpense(s.ctx, core.Expense{ID: id}), ErrNotFound)
}

func (s *SQLiteStoreTestSuite) TestListExpensesScopedToUser() {
	alice := s.mustCreateUser("alice")
	bob := s.mustCreateUser("bob")

	for i, uid := range []int64{alice.ID, alice.ID, bob.ID} {
		_, err := s.store.CreateExpense(s.ctx, core.Expense{
			UserID:      uid,
			Description: "item",
			Amount:      core.Money{Cents: int64(100 * (i + 1))},
			Category:    core.CategoryOther,
		})
		require.NoError(s.T(), err)
	}

	mine, err := s.store.ListExpenses(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), mine, 2)

	theirs, err := s.store.ListExpenses(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), theirs, 1)
}

func (s *SQLiteStoreTestSuite) TestExpenseWithEmptyDateSurvives() {
	u := s.mustCreateUser("alice")

	id, err := s.store.CreateExpense(s.ctx, core.Expense{
		UserID:      u.ID,
		Description: "no date",
		Amount:      core.Money{Cents: 100},
		Category:    core.CategoryOther,
	})
	require.NoError(s.T(), err)

	got, err := s.store.GetExpense(s.ctx, id)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.Date.IsZero())
}

func TestSQLiteStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreTestSuite))
}
