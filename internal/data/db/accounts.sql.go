package db

import (
	"context"
)

const accountColumns = `address, owner, balance, data, label, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (Account, error) {
	var i Account
	err := row.Scan(
		&i.Address,
		&i.Owner,
		&i.Balance,
		&i.Data,
		&i.Label,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccount = `-- name: GetAccount :one
SELECT ` + accountColumns + ` FROM accounts WHERE address = ?
`

func (q *Queries) GetAccount(ctx context.Context, address []byte) (Account, error) {
	row := q.db.QueryRowContext(ctx, getAccount, address)
	return scanAccount(row)
}

const listAccounts = `-- name: ListAccounts :many
SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, address
`

func (q *Queries) ListAccounts(ctx context.Context) ([]Account, error) {
	return q.queryAccounts(ctx, listAccounts)
}

const listAccountsByOwner = `-- name: ListAccountsByOwner :many
SELECT ` + accountColumns + ` FROM accounts WHERE owner = ? ORDER BY created_at, address
`

func (q *Queries) ListAccountsByOwner(ctx context.Context, owner string) ([]Account, error) {
	return q.queryAccounts(ctx, listAccountsByOwner, owner)
}

func (q *Queries) queryAccounts(ctx context.Context, query string, args ...interface{}) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		i, err := scanAccount(rows)
		if err != nil {
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

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (address, owner, balance, data, label, created_at, updated_at)
VALUES (?, ?, 0, ?, ?, ?, ?)
`

type CreateAccountParams struct {
	Address   []byte
	Owner     string
	Data      []byte
	Label     string
	CreatedAt int64
	UpdatedAt int64
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.ExecContext(ctx, createAccount,
		arg.Address,
		arg.Owner,
		arg.Data,
		arg.Label,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateAccountData = `-- name: UpdateAccountData :execrows
UPDATE accounts SET data = ?, updated_at = ? WHERE address = ?
`

type UpdateAccountDataParams struct {
	Data      []byte
	UpdatedAt int64
	Address   []byte
}

func (q *Queries) UpdateAccountData(ctx context.Context, arg UpdateAccountDataParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccountData, arg.Data, arg.UpdatedAt, arg.Address)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateAccountBalance = `-- name: UpdateAccountBalance :execrows
UPDATE accounts SET balance = ?, updated_at = ? WHERE address = ?
`

type UpdateAccountBalanceParams struct {
	Balance   int64
	UpdatedAt int64
	Address   []byte
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccountBalance, arg.Balance, arg.UpdatedAt, arg.Address)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAccount = `-- name: DeleteAccount :execrows
DELETE FROM accounts WHERE address = ?
`

func (q *Queries) DeleteAccount(ctx context.Context, address []byte) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAccount, address)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
