package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/models"
)

// Approved declaration statuses are inlined: only those heads count as precedent.
const hsCodeQuery = `
	SELECT
		t1.g_name AS "good_name",
		t1.g_code AS "hs_code",
		COUNT(1) AS "use_count"
	FROM ceb3_invt_head t
	INNER JOIN ceb3_invt_list t1 ON t1.head_guid = t.head_guid
	WHERE t.app_status IN ('399', '800', '899')
	AND t1.g_name = ?
	GROUP BY t1.g_name, t1.g_code
	ORDER BY t1.g_name, t1.g_code, COUNT(1) DESC
`

type DeclarationStore interface {
	Close() error
	Ping(ctx context.Context) error

	FetchHSCodes(ctx context.Context, goodName string) ([]models.ClassificationRecord, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *BaseStore) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// FetchHSCodes returns an empty, non-nil slice when nothing matched and an
// error only when the query itself could not be run.
func (s *BaseStore) FetchHSCodes(ctx context.Context, goodName string) ([]models.ClassificationRecord, error) {
	query := s.Converter(hsCodeQuery)
	logger.Debug.Printf("sql is %s", query)

	records := []models.ClassificationRecord{}
	err := WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &records, query, goodName)
	})
	if err != nil {
		logger.Error.Printf("Failed to fetch hs codes for good %q: %v", goodName, err)
		return nil, fmt.Errorf("failed to fetch hs codes: %w", err)
	}

	return records, nil
}
