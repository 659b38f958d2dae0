package postgres

import (
	"campsite/pkg/db"
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

type sqlxTransactionManager struct {
	db        *sqlx.DB
	isolation sql.IsolationLevel
}

func NewTransactionManager(conn *sqlx.DB) db.TransactionManager {
	return &sqlxTransactionManager{
		db:        conn,
		isolation: sql.LevelReadCommitted,
	}
}

// ExecuteTransaction commits when fn returns nil and rolls back otherwise.
// A ctx that already carries a transaction is reused.
func (m *sqlxTransactionManager) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: m.isolation})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok
}

// Ext returns the transaction bound to ctx, or conn when there is none.
func Ext(ctx context.Context, conn *sqlx.DB) sqlx.ExtContext {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return conn
}
