package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"finance/internal/amqp"
	"finance/internal/config"
	"finance/internal/core"
	"finance/internal/ledger/memory"
	"finance/internal/storage"
)

func quietFactory() *DefaultFactory {
	return NewFactory(slog.New(slog.NewTextHandler(io.Discard, nil))).(*DefaultFactory)
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) should fail")
	}

	cfg := &config.Config{DataBackend: "sqlite", AMQPURL: "amqp://localhost", AMQPExchange: "finance", AMQPQueue: "q"}
	got, err := FromAppConfig(cfg)
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if got.Type != SQLiteBackend || got.AMQPExchange != "finance" || got.AMQPQueue != "q" {
		t.Errorf("unexpected backend config: %+v", got)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("FromAppConfig() should reject unknown backends")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"sqlite with amqp", Config{Type: SQLiteBackend, AMQPURL: "amqp://x", AMQPExchange: "e", AMQPQueue: "q"}, false},
		{"unknown type", Config{Type: "sheets"}, true},
		{"amqp without queue", Config{Type: MemoryBackend, AMQPURL: "amqp://x", AMQPExchange: "e"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	f := quietFactory()

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		if err != nil {
			t.Fatalf("CreateBackend() error = %v", err)
		}
		defer res.Close()
		if _, ok := res.Repository.(*memory.Store); !ok {
			t.Errorf("expected memory store, got %T", res.Repository)
		}
		if err := res.Ready(ctx); err != nil {
			t.Errorf("Ready() error = %v", err)
		}
		if len(res.Notifiers) != 0 {
			t.Errorf("expected no notifiers, got %d", len(res.Notifiers))
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend})
		if err != nil {
			t.Fatalf("CreateBackend() error = %v", err)
		}
		defer res.Close()
		if _, ok := res.Repository.(*storage.SQLiteRepository); !ok {
			t.Errorf("expected sqlite repository, got %T", res.Repository)
		}
		if err := res.Ready(ctx); err != nil {
			t.Errorf("Ready() error = %v", err)
		}

		tx, err := core.NewTransaction(core.Expense, core.Fields{Description: "Bus", Amount: "4", Date: "2024-01-01", Category: "Transport"})
		if err != nil {
			t.Fatal(err)
		}
		if err := res.Repository.Prepend(ctx, tx); err != nil {
			t.Fatalf("Prepend() error = %v", err)
		}
	})

	t.Run("broker down disables publishing", func(t *testing.T) {
		f := quietFactory()
		f.dial = func(string, string, string) (*amqp.Client, error) {
			return nil, errors.New("connection refused")
		}
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend, AMQPURL: "amqp://x", AMQPExchange: "e", AMQPQueue: "q"})
		if err != nil {
			t.Fatalf("CreateBackend() error = %v", err)
		}
		if len(res.Notifiers) != 0 {
			t.Errorf("expected no notifiers, got %d", len(res.Notifiers))
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		if _, err := f.CreateBackend(ctx, Config{Type: "sheets"}); err == nil {
			t.Error("CreateBackend() should fail for unknown type")
		}
	})
}
