// internal/store/sqlite/store.go
package sqlite

import (
	"context"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shrimpsizemoose/precate/internal/store"
)

type SQLiteStore struct {
	store.BaseStore
}

func NewSQLiteStore(ctx context.Context, config *store.DBConfig) (*SQLiteStore, error) {
	db, err := store.Connect(ctx, "sqlite3", config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// every connection to :memory: would get its own empty database
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	return &SQLiteStore{BaseStore: store.BaseStore{
		DB:        db,
		Converter: db.Rebind,
	}}, nil
}
