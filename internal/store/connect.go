package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"
	"github.com/shrimpsizemoose/trekker/logger"
)

const connectBaseDelay = 500 * time.Millisecond

// Connect opens a pool for driver and retries with exponential backoff while
// the database is not reachable yet.
func Connect(ctx context.Context, driver string, config *DBConfig) (*sqlx.DB, error) {
	attempts := config.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}

	backoff := retry.WithCappedDuration(10*time.Second, retry.NewExponential(connectBaseDelay))
	backoff = retry.WithMaxRetries(attempts-1, backoff)

	var db *sqlx.DB
	attempt := uint64(0)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		conn, err := sqlx.ConnectContext(ctx, driver, config.DSN)
		if err != nil {
			logger.Error.Printf("Failed to connect to %s (attempt %d/%d): %v", driver, attempt, attempts, err)
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempt, err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	logger.Info.Printf("Connected to %s database", driver)
	return db, nil
}
