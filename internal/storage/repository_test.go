package storage

import (
	"context"
	"reflect"
	"testing"

	"finance/internal/core"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository()
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustTx(t *testing.T, kind core.Kind, desc, amount, category string) core.Transaction {
	t.Helper()
	tx, err := core.NewTransaction(kind, core.Fields{Description: desc, Amount: amount, Date: "2024-01-01", Category: category})
	if err != nil {
		t.Fatalf("new transaction: %v", err)
	}
	return tx
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	l, err := repo.List(ctx)
	if err != nil || len(l) != 0 {
		t.Fatalf("expected empty ledger, got %v err=%v", l, err)
	}

	salary := mustTx(t, core.Income, "Salary", "1000", "Salary")
	rent := mustTx(t, core.Expense, "Rent", "400", "Housing")
	if err := repo.Prepend(ctx, salary); err != nil {
		t.Fatalf("prepend salary: %v", err)
	}
	if err := repo.Prepend(ctx, rent); err != nil {
		t.Fatalf("prepend rent: %v", err)
	}

	l, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := core.Ledger{rent, salary}
	if !reflect.DeepEqual(l, want) {
		t.Fatalf("got %+v, want %+v", l, want)
	}

	totals := core.ComputeTotals(l)
	if totals.Balance.Cents != 60000 {
		t.Fatalf("balance = %d", totals.Balance.Cents)
	}
}

func TestSQLiteRepositoryRemove(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	salary := mustTx(t, core.Income, "Salary", "1000", "Salary")
	_ = repo.Prepend(ctx, salary)

	removed, err := repo.Remove(ctx, "missing")
	if err != nil || removed {
		t.Fatalf("remove absent: removed=%v err=%v", removed, err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}

	removed, err = repo.Remove(ctx, salary.ID)
	if err != nil || !removed {
		t.Fatalf("remove present: removed=%v err=%v", removed, err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}

func TestSQLiteRepositorySessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := newRepo(t)
	b := newRepo(t)
	_ = a.Prepend(ctx, mustTx(t, core.Expense, "Bus", "4.50", "Transport"))

	if n, _ := b.Count(ctx); n != 0 {
		t.Fatalf("second session sees %d transactions", n)
	}
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSQLiteRepositoryRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	tx := mustTx(t, core.Expense, "Bus", "4.50", "Transport")
	if err := repo.Prepend(ctx, tx); err != nil {
		t.Fatalf("prepend: %v", err)
	}
	if err := repo.Prepend(ctx, tx); err == nil {
		t.Fatal("expected unique constraint error")
	}
}
