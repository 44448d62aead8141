package store

import (
	"strings"
	"time"
)

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
	DBTypeOracle   DatabaseType = "oracle"
)

type DBConfig struct {
	DSN             string
	Type            DatabaseType
	ConnectAttempts uint64
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DetectType picks the backend from the DSN scheme. Anything that is not
// a postgres or oracle URL is treated as a sqlite path.
func DetectType(dsn string) DatabaseType {
	switch {
	case hasScheme(dsn, "postgres"), hasScheme(dsn, "postgresql"):
		return DBTypePostgres
	case hasScheme(dsn, "oracle"):
		return DBTypeOracle
	default:
		return DBTypeSQLite
	}
}

func hasScheme(dsn, scheme string) bool {
	return strings.HasPrefix(dsn, scheme+"://")
}
