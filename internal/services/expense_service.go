// Package services orchestrates the storage, categorization and event
// publishing around the domain operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/storage"
)

// ErrPermissionDenied is returned when a user touches an expense they do
// not own.
var ErrPermissionDenied = errors.New("permission denied")

// EventPublisher is the slice of the AMQP client the service needs. Nil is
// allowed; events are then skipped.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error
}

// ExpenseService owns the expense lifecycle: categorize at create, enforce
// ownership on read/edit/delete, publish events after successful writes.
type ExpenseService struct {
	store  storage.Store
	events EventPublisher
}

func NewExpenseService(store storage.Store, events EventPublisher) *ExpenseService {
	return &ExpenseService{store: store, events: events}
}

// Create validates and stores a new expense for userID. The category is
// assigned by the categorizer here, at write time, and never recomputed.
// An empty date defaults to today.
func (s *ExpenseService) Create(ctx context.Context, userID int64, description, amountStr, dateStr string) (core.Expense, error) {
	description = strings.TrimSpace(description)

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return core.Expense{}, err
	}

	var date core.Date
	if strings.TrimSpace(dateStr) == "" {
		now := time.Now()
		date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	} else {
		date, err = core.ParseDate(dateStr)
		if err != nil {
			return core.Expense{}, fmt.Errorf("parse date %q: %w", dateStr, err)
		}
	}

	e := core.Expense{
		UserID:      userID,
		Description: description,
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Category:    core.Categorize(description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	id, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	e.ID = id

	s.publish(ctx, amqp.EventExpenseCreated, e)
	return e, nil
}

// Get returns the expense if it exists and is owned by requesterID.
func (s *ExpenseService) Get(ctx context.Context, requesterID, expenseID int64) (core.Expense, error) {
	e, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return core.Expense{}, err
	}
	if e.UserID != requesterID {
		return core.Expense{}, ErrPermissionDenied
	}
	return e, nil
}

// Update edits an owned expense. The category comes from the caller (the
// edit form supplies it explicitly); the categorizer does not run again.
// Unknown category strings coerce to Other so the stored value always
// stays inside the fixed enum.
func (s *ExpenseService) Update(ctx context.Context, requesterID, expenseID int64, description, amountStr, dateStr, category string) (core.Expense, error) {
	e, err := s.Get(ctx, requesterID, expenseID)
	if err != nil {
		return core.Expense{}, err
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return core.Expense{}, err
	}

	var date core.Date
	if strings.TrimSpace(dateStr) != "" {
		date, err = core.ParseDate(dateStr)
		if err != nil {
			return core.Expense{}, fmt.Errorf("parse date %q: %w", dateStr, err)
		}
	}

	e.Description = strings.TrimSpace(description)
	e.Amount = core.Money{Cents: cents}
	e.Date = date
	e.Category = core.ParseCategory(category)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

// Delete removes an owned expense. Deletion is immediate and irreversible.
func (s *ExpenseService) Delete(ctx context.Context, requesterID, expenseID int64) error {
	e, err := s.Get(ctx, requesterID, expenseID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseDeleted, e)
	return nil
}

// List returns the user's expenses newest first: by creation time, falling
// back to the calendar date for records without one, and keeping insertion
// order when neither is usable.
func (s *ExpenseService) List(ctx context.Context, userID int64) ([]core.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return sortKey(expenses[i]) > sortKey(expenses[j])
	})
	return expenses, nil
}

// Summarize aggregates the user's expenses into totals, percentages and
// advisory messages.
func (s *ExpenseService) Summarize(ctx context.Context, userID int64) (core.Summary, error) {
	expenses, err := s.List(ctx, userID)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(expenses), nil
}

func sortKey(e core.Expense) int64 {
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt.Unix()
	}
	if !e.Date.IsZero() {
		return e.Date.Unix()
	}
	return 0
}

// publish sends an expense event, best effort. A failed or skipped publish
// never fails the request; the write already succeeded.
func (s *ExpenseService) publish(ctx context.Context, event string, e core.Expense) {
	if s.events == nil {
		return
	}
	msg := &amqp.ExpenseEventMessage{
		Event:       event,
		ExpenseID:   e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		AmountCents: e.Amount.Cents,
		Date:        e.Date.String(),
		Category:    string(e.Category),
		Timestamp:   time.Now().UTC(),
	}
	if err := s.events.PublishExpenseEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"event", event,
			"expense_id", e.ID,
			"error", err)
	}
}
