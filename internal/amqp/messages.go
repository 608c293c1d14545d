package amqp

import (
	"encoding/json"
	"time"
)

const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEventMessage is published after an expense write succeeds. It
// carries the full record so consumers (the Sheets export worker) do not
// need database access.
type ExpenseEventMessage struct {
	Event       string    `json:"event"`
	ExpenseID   int64     `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON decodes a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
