package app

import (
	"context"
	"fmt"

	"github.com/shrimpsizemoose/precate/internal/store"
	"github.com/shrimpsizemoose/precate/internal/store/oracle"
	"github.com/shrimpsizemoose/precate/internal/store/postgres"
	"github.com/shrimpsizemoose/precate/internal/store/sqlite"
)

func NewStore(ctx context.Context, config *store.DBConfig) (store.DeclarationStore, error) {
	switch config.Type {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(ctx, config)
	case store.DBTypeOracle:
		return oracle.NewOracleStore(ctx, config)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(ctx, config)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", config.DSN)
	}
}
