package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"finance/internal/cache"
	"finance/internal/core"
	"finance/internal/ledger"
	"finance/internal/log"
)

// Notifier receives the derived values after every ledger mutation.
type Notifier interface {
	Notify(ctx context.Context, ev core.LedgerEvent) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev core.LedgerEvent) error

func (f NotifierFunc) Notify(ctx context.Context, ev core.LedgerEvent) error {
	return f(ctx, ev)
}

// LedgerService orchestrates validation, storage, aggregation and
// notification for the session ledger.
type LedgerService struct {
	mu        sync.RWMutex
	repo      ledger.Repository
	notifiers []Notifier
	summaries *cache.Cache[core.Summary]
	version   uint64
}

// NewLedgerService wires a repository and notifiers. Summaries are memoized
// for summaryTTL per ledger version and view.
func NewLedgerService(repo ledger.Repository, summaryTTL time.Duration, notifiers ...Notifier) *LedgerService {
	if summaryTTL <= 0 {
		summaryTTL = 5 * time.Minute
	}
	return &LedgerService{
		repo:      repo,
		notifiers: notifiers,
		summaries: cache.New[core.Summary](summaryTTL, 2*summaryTTL),
	}
}

// AddTransaction validates the fields, records a transaction of the given
// kind in front of the ledger and notifies the collaborators. Validation
// errors leave the ledger untouched.
func (s *LedgerService) AddTransaction(ctx context.Context, kind core.Kind, f core.Fields) (core.Transaction, error) {
	tx, err := core.NewTransaction(kind, f)
	if err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	if err := s.repo.Prepend(ctx, tx); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.version++
	ev, err := s.eventLocked(ctx, core.EventTransactionAdded, tx.ID)
	s.mu.Unlock()
	if err != nil {
		// The transaction is stored; only the notification is lost.
		slog.ErrorContext(ctx, "Failed to build ledger event",
			log.FieldComponent, log.ComponentLedger,
			log.FieldOperation, log.OpSummarize,
			log.FieldTransactionID, tx.ID,
			log.FieldError, err)
		return tx, nil
	}

	s.notify(ctx, ev)
	return tx, nil
}

// RemoveTransaction deletes the transaction with the identifier. Unknown
// identifiers are ignored.
func (s *LedgerService) RemoveTransaction(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("remove transaction: %w", err)
	}
	if !removed {
		s.mu.Unlock()
		slog.DebugContext(ctx, "Remove ignored, transaction not found",
			log.FieldComponent, log.ComponentLedger,
			log.FieldTransactionID, id)
		return nil
	}
	s.version++
	ev, err := s.eventLocked(ctx, core.EventTransactionRemoved, id)
	s.mu.Unlock()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build ledger event",
			log.FieldComponent, log.ComponentLedger,
			log.FieldOperation, log.OpSummarize,
			log.FieldTransactionID, id,
			log.FieldError, err)
		return nil
	}

	s.notify(ctx, ev)
	return nil
}

// Transactions returns a snapshot of the ledger, newest first.
func (s *LedgerService) Transactions(ctx context.Context) (core.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return l, nil
}

// Summary returns the derived values of the current ledger for the view.
func (s *LedgerService) Summary(ctx context.Context, view core.View) (core.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summaryLocked(ctx, view)
}

// Version increases by one on every effective mutation.
func (s *LedgerService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *LedgerService) summaryLocked(ctx context.Context, view core.View) (core.Summary, error) {
	key := summaryKey(s.version, view)
	if sum, ok := s.summaries.Get(key); ok {
		slog.DebugContext(ctx, "Summary cache hit",
			log.FieldComponent, log.ComponentCache,
			log.FieldVersion, s.version,
			log.FieldView, view)
		return sum.Clone(), nil
	}

	l, err := s.repo.List(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list transactions: %w", err)
	}
	sum := core.Summarize(l, view, s.version)
	s.summaries.Set(key, sum)
	return sum.Clone(), nil
}

func (s *LedgerService) eventLocked(ctx context.Context, eventType, id string) (core.LedgerEvent, error) {
	expense, err := s.summaryLocked(ctx, core.ViewExpense)
	if err != nil {
		return core.LedgerEvent{}, err
	}
	income, err := s.summaryLocked(ctx, core.ViewIncome)
	if err != nil {
		return core.LedgerEvent{}, err
	}
	return core.LedgerEvent{
		Type:          eventType,
		TransactionID: id,
		Expense:       expense,
		Income:        income,
		At:            time.Now().UTC(),
	}, nil
}

func (s *LedgerService) notify(ctx context.Context, ev core.LedgerEvent) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, ev); err != nil {
			// Don't fail the command - the ledger is already updated
			slog.ErrorContext(ctx, "Failed to notify ledger change",
				log.FieldComponent, log.ComponentLedger,
				log.FieldOperation, log.OpNotify,
				log.FieldEventType, ev.Type,
				log.FieldTransactionID, ev.TransactionID,
				log.FieldVersion, ev.Expense.Version,
				log.FieldError, err)
		}
	}
}

func summaryKey(version uint64, view core.View) string {
	return strconv.FormatUint(version, 10) + ":" + view.String()
}
