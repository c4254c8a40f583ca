package backend

import (
	"context"

	"finance/internal/ledger"
	"finance/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// ReadyFunc reports whether the backend can serve requests
type ReadyFunc func(ctx context.Context) error

// BackendResult contains the ledger repository, the notifiers to register on
// the service and an optional cleanup function
type BackendResult struct {
	Repository ledger.Repository
	Notifiers  []services.Notifier
	Ready      ReadyFunc
	Cleanup    CleanupFunc
}

// Close runs the cleanup function if any
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// AMQP publishing is optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
