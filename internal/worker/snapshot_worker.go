package worker

import (
	"context"
	"log/slog"
	"sync"

	"finance/internal/amqp"
	"finance/internal/core"
	"finance/internal/log"
)

// SnapshotWorker consumes ledger snapshots published by the server and keeps
// the most recent one. Snapshots older than the last one seen are skipped, so
// redeliveries never move the view backwards.
type SnapshotWorker struct {
	currency string

	mu       sync.RWMutex
	latest   *amqp.LedgerEventMessage
	handled  int
	outdated int
}

func NewSnapshotWorker(currency string) *SnapshotWorker {
	if currency == "" {
		currency = core.DefaultCurrency
	}
	return &SnapshotWorker{currency: currency}
}

// HandleLedgerEvent processes a single ledger snapshot message from AMQP.
func (w *SnapshotWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	w.mu.Lock()
	if w.latest != nil && msg.Version() < w.latest.Version() {
		w.outdated++
		last := w.latest.Version()
		w.mu.Unlock()
		slog.DebugContext(ctx, "Skipping outdated ledger snapshot",
			log.FieldComponent, log.ComponentWorker,
			log.FieldVersion, msg.Version(),
			"latest_version", last)
		return nil
	}
	w.latest = msg
	w.handled++
	w.mu.Unlock()

	totals := msg.Expense.Totals
	slog.InfoContext(ctx, "Ledger snapshot received",
		log.FieldComponent, log.ComponentWorker,
		log.FieldOperation, log.OpConsume,
		log.FieldEventType, msg.Event,
		log.FieldTransactionID, msg.TransactionID,
		log.FieldVersion, msg.Version(),
		"count", msg.Expense.Count,
		"income", totals.Income.Format(w.currency),
		"expense", totals.Expense.Abs().Format(w.currency),
		"balance", totals.Balance.Format(w.currency))

	for _, share := range msg.Expense.ByCategory {
		slog.DebugContext(ctx, "Expense category",
			log.FieldComponent, log.ComponentWorker,
			log.FieldCategory, share.Category,
			"amount", share.Amount.Format(w.currency),
			"percent", share.Percent)
	}
	return nil
}

// Latest returns the newest snapshot seen, if any.
func (w *SnapshotWorker) Latest() (amqp.LedgerEventMessage, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.latest == nil {
		return amqp.LedgerEventMessage{}, false
	}
	out := *w.latest
	out.Expense = w.latest.Expense.Clone()
	out.Income = w.latest.Income.Clone()
	return out, true
}

// Stats reports how many snapshots were applied and how many were skipped.
func (w *SnapshotWorker) Stats() (handled, outdated int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.handled, w.outdated
}
