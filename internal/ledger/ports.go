// Package ledger defines the storage ports for the session ledger.
package ledger

import (
	"context"

	"finance/internal/core"
)

// Ports for outbound adapters.
type (
	// Writer mutates the ledger.
	Writer interface {
		// Prepend stores t in front of every existing transaction.
		Prepend(ctx context.Context, t core.Transaction) error
		// Remove deletes the transaction with the identifier. It reports
		// whether one was found; an unknown id is not an error.
		Remove(ctx context.Context, id string) (bool, error)
	}

	// Reader returns a snapshot of the ledger, newest first.
	Reader interface {
		List(ctx context.Context) (core.Ledger, error)
	}

	// Repository is the full ledger store.
	Repository interface {
		Writer
		Reader
	}
)
