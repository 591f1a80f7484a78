package db

import (
	"context"
)

const transferColumns = `id, tx_id, from_address, to_address, amount, kind, created_at`

const insertTransfer = `-- name: InsertTransfer :exec
INSERT INTO transfers (id, tx_id, from_address, to_address, amount, kind, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertTransferParams struct {
	ID          string
	TxID        string
	FromAddress []byte
	ToAddress   []byte
	Amount      int64
	Kind        string
	CreatedAt   int64
}

func (q *Queries) InsertTransfer(ctx context.Context, arg InsertTransferParams) error {
	_, err := q.db.ExecContext(ctx, insertTransfer,
		arg.ID,
		arg.TxID,
		arg.FromAddress,
		arg.ToAddress,
		arg.Amount,
		arg.Kind,
		arg.CreatedAt,
	)
	return err
}

const listTransfers = `-- name: ListTransfers :many
SELECT ` + transferColumns + ` FROM transfers
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`

// ListTransfers returns the newest transfers first. A negative limit means no limit.
func (q *Queries) ListTransfers(ctx context.Context, limit int64) ([]Transfer, error) {
	return q.queryTransfers(ctx, listTransfers, limit)
}

const listTransfersByAccount = `-- name: ListTransfersByAccount :many
SELECT ` + transferColumns + ` FROM transfers
WHERE from_address = ?1 OR to_address = ?1
ORDER BY created_at DESC, rowid DESC
LIMIT ?2
`

type ListTransfersByAccountParams struct {
	Address []byte
	Limit   int64
}

func (q *Queries) ListTransfersByAccount(ctx context.Context, arg ListTransfersByAccountParams) ([]Transfer, error) {
	return q.queryTransfers(ctx, listTransfersByAccount, arg.Address, arg.Limit)
}

const listTransfersByTx = `-- name: ListTransfersByTx :many
SELECT ` + transferColumns + ` FROM transfers
WHERE tx_id = ?
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`

type ListTransfersByTxParams struct {
	TxID  string
	Limit int64
}

func (q *Queries) ListTransfersByTx(ctx context.Context, arg ListTransfersByTxParams) ([]Transfer, error) {
	return q.queryTransfers(ctx, listTransfersByTx, arg.TxID, arg.Limit)
}

func (q *Queries) queryTransfers(ctx context.Context, query string, args ...interface{}) ([]Transfer, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transfer
	for rows.Next() {
		var i Transfer
		if err := rows.Scan(
			&i.ID,
			&i.TxID,
			&i.FromAddress,
			&i.ToAddress,
			&i.Amount,
			&i.Kind,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
