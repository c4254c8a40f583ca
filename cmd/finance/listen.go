package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"finance/internal/amqp"
	"finance/internal/cli"
	"finance/internal/log"
	"finance/internal/worker"
)

type listenCmd struct {
	queue string
}

func (*listenCmd) Name() string     { return "listen" }
func (*listenCmd) Synopsis() string { return "consume ledger snapshots published by the server" }
func (*listenCmd) Usage() string {
	return `finance listen [-queue <name>]

  Connects to AMQP_URL and logs every ledger snapshot the server publishes.
  Reconnects with backoff when the broker goes away.
`
}

func (c *listenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.queue, "queue", "", "Queue to consume from. Overrides AMQP_QUEUE.")
}

func (c *listenCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bootLogger := cli.SetupLogger("info")
	cfg, err := cli.LoadAndValidateConfig(bootLogger)
	if err != nil {
		return subcommands.ExitFailure
	}
	if c.queue != "" {
		cfg.AMQPQueue = c.queue
	}
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentWorker)

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required to listen for ledger snapshots")
		return subcommands.ExitUsageError
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		return subcommands.ExitFailure
	}
	defer client.Close()

	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	snapshots := worker.NewSnapshotWorker(cfg.Currency)
	logger.Info("Listening for ledger snapshots", log.FieldOperation, log.OpStartup, "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	err = cli.RunUntilDone(ctx, logger, cfg.ShutdownTimeout,
		func() error { return client.ConsumeEvents(ctx, snapshots.HandleLedgerEvent) },
		func(context.Context) error { return nil },
	)
	handled, outdated := snapshots.Stats()
	if err != nil {
		logger.Error("Message consumption failed", log.FieldError, err)
		return subcommands.ExitFailure
	}
	logger.Info("Worker shutdown complete", "handled", handled, "outdated", outdated)
	return subcommands.ExitSuccess
}
