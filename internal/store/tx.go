package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shrimpsizemoose/trekker/logger"
)

// WithTx runs fn inside a transaction. It commits when fn succeeds and rolls
// back on error or panic; the connection goes back to the pool either way.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error.Printf("Rollback failed: %v", rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}
