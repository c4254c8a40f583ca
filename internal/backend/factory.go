package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finance/internal/amqp"
	"finance/internal/ledger/memory"
	"finance/internal/log"
	"finance/internal/services"
	"finance/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
	dial   func(url, exchange, queue string) (*amqp.Client, error)
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
		dial:   amqp.NewClient,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var result *BackendResult
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		result = &BackendResult{
			Repository: repo,
			Ready:      repo.Ping,
			Cleanup:    repo.Close,
		}
		f.logger.InfoContext(ctx, "Initialized session SQLite backend", log.FieldComponent, log.ComponentBackend)
	case MemoryBackend:
		result = &BackendResult{
			Repository: memory.New(),
			Ready:      func(context.Context) error { return nil },
		}
		f.logger.InfoContext(ctx, "Initialized memory backend", log.FieldComponent, log.ComponentBackend)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	f.attachNotifier(ctx, config, result)
	return result, nil
}

// attachNotifier adds the AMQP publisher when configured. A broker that is
// down at startup only disables publishing.
func (f *DefaultFactory) attachNotifier(ctx context.Context, config Config, result *BackendResult) {
	if config.AMQPURL == "" {
		return
	}

	client, err := f.dial(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without publishing",
			log.FieldComponent, log.ComponentBackend,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeNetwork)
		return
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Notifiers = append(result.Notifiers, services.Notifier(client))
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close AMQP client: %w", err))
		}
		if storeCleanup != nil {
			if err := storeCleanup(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
