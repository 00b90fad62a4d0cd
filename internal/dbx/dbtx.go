// Package dbx holds the database/sql helpers of the SQLite storage adapter:
// the DBTX handle shared by *sql.DB and *sql.Tx, transactional execution and
// batched statements.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql used by the storage adapters.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Beginner starts transactions. *sql.DB and *sql.Conn implement it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside a transaction started on db. The transaction commits
// when fn returns nil and rolls back on an error or a panic; a panic is
// re-raised after the rollback. A failed commit is returned as the error.
func WithTx(ctx context.Context, db Beginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
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
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit tx: %w", cerr)
		}
	}()

	return fn(ctx, tx)
}

// ExecEach runs query once per argument set and stops at the first error,
// which names the failing set. It is atomic only inside WithTx.
func ExecEach(ctx context.Context, db DBTX, query string, argSets ...[]any) error {
	for _, args := range argSets {
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("exec %v: %w", args, err)
		}
	}
	return nil
}
