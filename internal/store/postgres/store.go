package postgres

import (
	"context"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/shrimpsizemoose/precate/internal/store"
)

type PostgresStore struct {
	store.BaseStore
}

func NewPostgresStore(ctx context.Context, config *store.DBConfig) (*PostgresStore, error) {
	db, err := store.Connect(ctx, "postgres", config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresStore{BaseStore: store.BaseStore{
		DB:        db,
		Converter: db.Rebind,
	}}, nil
}
