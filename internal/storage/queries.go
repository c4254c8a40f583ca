package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// TransactionRow mirrors a row of the transactions table.
type TransactionRow struct {
	Seq         int64
	ID          string
	Description string
	AmountCents int64
	Date        string
	Category    string
}

type InsertTransactionParams struct {
	ID          string
	Description string
	AmountCents int64
	Date        string
	Category    string
}

const insertTransaction = `
INSERT INTO transactions (id, description, amount_cents, date, category)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) InsertTransaction(ctx context.Context, arg InsertTransactionParams) error {
	_, err := q.db.ExecContext(ctx, insertTransaction,
		arg.ID,
		arg.Description,
		arg.AmountCents,
		arg.Date,
		arg.Category,
	)
	return err
}

const deleteTransaction = `DELETE FROM transactions WHERE id = ?`

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listTransactions = `
SELECT seq, id, description, amount_cents, date, category
FROM transactions
ORDER BY seq DESC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(
			&i.Seq,
			&i.ID,
			&i.Description,
			&i.AmountCents,
			&i.Date,
			&i.Category,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTransactions = `SELECT COUNT(*) FROM transactions`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTransactions).Scan(&n)
	return n, err
}
