package main

import (
	"context"
	"errors"
	"flag"
	"net/http"

	"github.com/google/subcommands"

	"finance/internal/backend"
	"finance/internal/cli"
	apphttp "finance/internal/http"
	"finance/internal/log"
	"finance/internal/services"
)

type serveCmd struct {
	port    string
	backend string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the ledger web UI and JSON API" }
func (*serveCmd) Usage() string {
	return `finance serve [-port <port>] [-backend memory|sqlite]

  Serves the ledger on the configured port. The ledger lives for the
  lifetime of the process. When AMQP_URL is set every change is published
  as a snapshot to the configured exchange.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Port to listen on. Overrides PORT.")
	f.StringVar(&c.backend, "backend", "", "Ledger storage (memory, sqlite). Overrides DATA_BACKEND.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bootLogger := cli.SetupLogger("info")
	cfg, err := cli.LoadAndValidateConfig(bootLogger)
	if err != nil {
		return subcommands.ExitFailure
	}
	if c.port != "" {
		cfg.Port = c.port
	}
	if c.backend != "" {
		cfg.DataBackend = c.backend
	}
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentApp)

	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		return subcommands.ExitFailure
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	ledger := services.NewLedgerService(result.Repository, cfg.CacheTTL, result.Notifiers...)
	srv := apphttp.NewServer(":"+cfg.Port, ledger, apphttp.Options{
		Currency:           cfg.Currency,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
		Ready:              result.Ready,
	})

	logger.Info("Starting finance server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"currency", cfg.Currency,
		"amqp", cfg.AMQPEnabled())

	err = cli.RunUntilDone(ctx, logger, cfg.ShutdownTimeout,
		func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		srv.Shutdown,
	)
	if err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		return subcommands.ExitFailure
	}
	logger.Info("Server stopped gracefully")
	return subcommands.ExitSuccess
}
