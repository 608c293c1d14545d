package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/amqp"
)

type fakeAppender struct {
	rows [][]any
	err  error
}

func (f *fakeAppender) AppendRow(_ context.Context, row []any) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func TestWorkerHandleAppendsJournalRow(t *testing.T) {
	appender := &fakeAppender{}
	w := NewWorker(appender)

	msg := &amqp.ExpenseEventMessage{
		Event:       amqp.EventExpenseCreated,
		ExpenseID:   42,
		UserID:      7,
		Description: "Pizza",
		AmountCents: 1250,
		Date:        "2024-03-01",
		Category:    "Food",
		Timestamp:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, w.Handle(context.Background(), msg))

	require.Len(t, appender.rows, 1)
	row := appender.rows[0]
	assert.Equal(t, amqp.EventExpenseCreated, row[0])
	assert.Equal(t, "2024-03-01T12:00:00Z", row[1])
	assert.Equal(t, int64(42), row[2])
	assert.Equal(t, "Pizza", row[5])
	assert.Equal(t, 12.5, row[6])
}

func TestWorkerHandlePropagatesAppendError(t *testing.T) {
	w := NewWorker(&fakeAppender{err: errors.New("quota exceeded")})

	err := w.Handle(context.Background(), &amqp.ExpenseEventMessage{
		Event:     amqp.EventExpenseDeleted,
		ExpenseID: 42,
	})
	assert.Error(t, err)
}
