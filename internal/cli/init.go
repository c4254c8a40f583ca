// Package cli provides common CLI initialization utilities shared by the
// finance subcommands.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finance/internal/config"
	"finance/internal/log"
)

// SetupLogger initializes structured logging at the given level.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	if os.Getenv("LOG_FORMAT") == "json" {
		cfg.Format = "json"
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it. Validation failures are logged before being returned.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// RunUntilDone runs start until it fails or ctx is cancelled, then calls
// stop with a context bounded by timeout. start is expected to return once
// stop has been called; a nil error or context.Canceled from start counts as
// a clean exit.
func RunUntilDone(ctx context.Context, logger *log.Logger, timeout time.Duration,
	start func() error, stop func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := start(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := stop(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warn("Shutdown timeout reached", log.FieldError, err)
			}
			return err
		}
		return nil
	})

	return g.Wait()
}
