package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/models"
	"github.com/shrimpsizemoose/precate/internal/store"
)

// ErrUnavailable marks failures of redis or the database, as opposed to a
// bad token or an unknown good.
var ErrUnavailable = errors.New("dependency unavailable")

type Service struct {
	Config *Config
	Store  store.DeclarationStore
	Auth   TokenGate
}

func NewService(ctx context.Context, configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig := config.DBConfig()
	logger.Info.Printf("Using %s declaration store", dbConfig.Type)
	store, err := NewStore(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	return &Service{
		Config: config,
		Store:  store,
		Auth:   auth,
	}, nil
}

// LookupHSCodes checks the token, runs the aggregate and shapes the answer.
// The returned result is always usable as a response body; err is non-nil
// only for infrastructure faults and then wraps ErrUnavailable.
func (s *Service) LookupHSCodes(ctx context.Context, req models.HSCodeRequest) (*models.QueryResult, error) {
	token, err := s.Auth.Check(ctx, req.Token)
	if err != nil {
		return UnavailableResult(nil), fmt.Errorf("%w: token lookup: %w", ErrUnavailable, err)
	}
	if !token.Valid {
		return InvalidTokenResult(req.Token), nil
	}

	start := time.Now()
	queryCtx, cancel := context.WithTimeout(ctx, s.Config.Database.QueryTimeout.Std())
	defer cancel()

	records, err := s.Store.FetchHSCodes(queryCtx, req.GoodName)
	observeDependency("database", start, err)
	if err != nil {
		return UnavailableResult(&token), fmt.Errorf("%w: hs code query: %w", ErrUnavailable, err)
	}

	return BuildResult(req.GoodName, token, records), nil
}

// CheckDependencies pings redis and the database, keyed by dependency name.
func (s *Service) CheckDependencies(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, s.Config.Auth.LookupTimeout.Std())
	defer cancel()

	return map[string]error{
		"redis":    s.Auth.Ping(ctx),
		"database": s.Store.Ping(ctx),
	}
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
