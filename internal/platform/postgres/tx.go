package postgres

import (
	"context"
	"database/sql"

	"github.com/phrazzld/lunchvote/internal/store"
)

// inTx runs fn in a new transaction when db is a connection pool. When db is
// already a transaction, fn joins it.
func inTx(ctx context.Context, db store.DBTX, fn func(ctx context.Context, q store.DBTX) error) error {
	beginner, ok := db.(store.TxBeginner)
	if !ok {
		return fn(ctx, db)
	}
	return store.RunInTransaction(ctx, beginner, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, tx)
	})
}
