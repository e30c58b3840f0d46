// Package dbx holds the small database/sql abstractions shared by the local
// cache repositories: DBTX, implemented by both *sql.DB and *sql.Tx, and
// helpers for running statements inside a transaction.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxStarter is satisfied by *sql.DB.
type TxStarter interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx begins a transaction, runs fn with the transactional handle, and
// commits when fn returns nil. On error or panic the transaction is rolled
// back; panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return tasks.NewSQLiteRepository(tx).Upsert(ctx, row)
//	})
func WithTx(ctx context.Context, db TxStarter, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// ExecAffected runs query and returns the number of affected rows.
func ExecAffected(ctx context.Context, db DBTX, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Placeholders returns "?, ?, ?" for n arguments. n must be positive.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}

// Args converts a typed slice into the variadic form expected by database/sql.
func Args[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// DeleteMissing removes the rows of table whose parentCol equals parentID and
// whose keyCol is not listed in keep. With an empty keep every row of that
// parent is removed. Table and column names must be trusted constants.
func DeleteMissing(ctx context.Context, db DBTX, table, parentCol string, parentID any, keyCol string, keep []int64) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, parentCol)
	args := []any{parentID}
	if len(keep) > 0 {
		query += fmt.Sprintf(" AND %s NOT IN (%s)", keyCol, Placeholders(len(keep)))
		args = append(args, Args(keep)...)
	}
	return ExecAffected(ctx, db, query, args...)
}
