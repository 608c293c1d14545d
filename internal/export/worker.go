package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/amqp"
)

// RowAppender is the slice of the exporter the worker needs.
type RowAppender interface {
	AppendRow(ctx context.Context, row []any) error
}

// Worker turns expense events from the queue into journal rows.
type Worker struct {
	appender RowAppender
}

func NewWorker(appender RowAppender) *Worker {
	return &Worker{appender: appender}
}

// Handle processes one expense event. Returning an error makes the
// consumer requeue the message.
func (w *Worker) Handle(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	row := eventRow(msg)

	appendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := w.appender.AppendRow(appendCtx, row); err != nil {
		return fmt.Errorf("export %s event for expense %d: %w", msg.Event, msg.ExpenseID, err)
	}

	slog.InfoContext(ctx, "Exported expense event",
		"event", msg.Event,
		"expense_id", msg.ExpenseID,
		"user_id", msg.UserID)
	return nil
}

func eventRow(msg *amqp.ExpenseEventMessage) []any {
	amount := float64(msg.AmountCents) / 100.0
	return []any{
		msg.Event,
		msg.Timestamp.UTC().Format(time.RFC3339),
		msg.ExpenseID,
		msg.UserID,
		msg.Date,
		msg.Description,
		amount,
		msg.Category,
	}
}
