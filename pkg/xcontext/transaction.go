package xcontext

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNoTransaction = errors.New("no running transaction")

type transaction struct {
	db       *gorm.DB
	finished bool
}

func dbTx(ctx context.Context) *transaction {
	tx := ctx.Value(dbTxKey{})
	if tx == nil {
		return nil
	}

	return tx.(*transaction)
}

// WithDBTransaction begins a transaction on the current database. Until it is
// committed or rolled back, DB returns the transaction for the returned
// context and all contexts derived from it.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &transaction{db: DB(ctx).Begin()})
}

// CommitDBTransaction commits the transaction started by WithDBTransaction.
func CommitDBTransaction(ctx context.Context) error {
	tx := dbTx(ctx)
	if tx == nil || tx.finished {
		return ErrNoTransaction
	}

	tx.finished = true
	return tx.db.Commit().Error
}

// RollbackDBTransaction rollbacks the transaction if it is still running. It is
// safe to defer right after WithDBTransaction.
func RollbackDBTransaction(ctx context.Context) {
	tx := dbTx(ctx)
	if tx == nil || tx.finished {
		return
	}

	tx.finished = true
	if err := tx.db.Rollback().Error; err != nil {
		Logger(ctx).Errorf("Cannot rollback transaction: %v", err)
	}
}
