// Package storage implements the ledger repository on a session-scoped
// SQLite database. The database lives in shared-cache memory and disappears
// when the repository is closed.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"finance/internal/core"
	"finance/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	dsn     string
}

// SessionDSN returns the DSN of an in-memory database private to this
// process and name.
func SessionDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

// NewSQLiteRepository opens a fresh session database and applies the schema.
func NewSQLiteRepository() (*SQLiteRepository, error) {
	return NewSQLiteRepositoryWithDSN(SessionDSN("finance-" + uuid.NewString()))
}

// NewSQLiteRepositoryWithDSN opens the database behind dsn and migrates it.
func NewSQLiteRepositoryWithDSN(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single long-lived connection keeps the in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		dsn:     dsn,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Prepend implements ledger.Writer
func (r *SQLiteRepository) Prepend(ctx context.Context, t core.Transaction) error {
	err := r.queries.InsertTransaction(ctx, InsertTransactionParams{
		ID:          t.ID,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Date:        t.Date,
		Category:    t.Category.String(),
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldTransactionID, t.ID,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldCategory, t.Category)
	return nil
}

// Remove implements ledger.Writer
func (r *SQLiteRepository) Remove(ctx context.Context, id string) (bool, error) {
	n, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return n > 0, nil
}

// List implements ledger.Reader
func (r *SQLiteRepository) List(ctx context.Context) (core.Ledger, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	l := make(core.Ledger, len(rows))
	for i, row := range rows {
		l[i] = core.Transaction{
			ID:          row.ID,
			Description: row.Description,
			Amount:      core.Money{Cents: row.AmountCents},
			Date:        row.Date,
			Category:    core.Category(row.Category),
		}
	}
	return l, nil
}

// Count returns the number of stored transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Ping checks the connection for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
