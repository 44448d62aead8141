// Package oracle backs the declaration store with the customs Oracle schema,
// which is where ceb3_invt_head/ceb3_invt_list live in production.
package oracle

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2"

	"github.com/shrimpsizemoose/precate/internal/store"
)

const driverName = "oracle"

func init() {
	sqlx.BindDriver(driverName, sqlx.NAMED)
}

type OracleStore struct {
	store.BaseStore
}

func NewOracleStore(ctx context.Context, config *store.DBConfig) (*OracleStore, error) {
	db, err := store.Connect(ctx, driverName, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to oracle: %w", err)
	}

	return &OracleStore{BaseStore: store.BaseStore{
		DB:        db,
		Converter: db.Rebind,
	}}, nil
}

// BuildDSN turns the classic user/password/"host:port/service" triple into a
// go-ora connection URL.
func BuildDSN(username, password, address string) string {
	host, service, _ := strings.Cut(address, "/")
	u := url.URL{
		Scheme: driverName,
		User:   url.UserPassword(username, password),
		Host:   host,
		Path:   "/" + service,
	}
	return u.String()
}
