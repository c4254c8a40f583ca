package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finance/internal/core"
)

var ErrUnknownEvent = errors.New("unknown ledger event")

// LedgerEventMessage is the snapshot published after every ledger mutation.
// It carries the derived values for both views so a consumer never needs to
// read the ledger itself.
type LedgerEventMessage struct {
	Event         string       `json:"event"`
	TransactionID string       `json:"transaction_id"`
	Expense       core.Summary `json:"expense"`
	Income        core.Summary `json:"income"`
	Timestamp     time.Time    `json:"timestamp"`
}

// NewLedgerEventMessage builds a message from a ledger event.
func NewLedgerEventMessage(ev core.LedgerEvent) *LedgerEventMessage {
	ts := ev.At
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &LedgerEventMessage{
		Event:         ev.Type,
		TransactionID: ev.TransactionID,
		Expense:       ev.Expense.Clone(),
		Income:        ev.Income.Clone(),
		Timestamp:     ts,
	}
}

// Version is the ledger version the snapshot was taken at.
func (m *LedgerEventMessage) Version() uint64 {
	return m.Expense.Version
}

// Validate rejects messages that no producer of this service would send.
func (m *LedgerEventMessage) Validate() error {
	switch m.Event {
	case core.EventTransactionAdded, core.EventTransactionRemoved:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, m.Event)
	}
	if m.TransactionID == "" {
		return core.ErrEmptyID
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON decodes and validates a message.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
