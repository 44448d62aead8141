// internal/app/auth.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/metrics"
	"github.com/shrimpsizemoose/precate/internal/models"
)

// redis answers TTL with -2 for a missing key and -1 for a key without expiry
const (
	ttlMissing  = time.Duration(-2)
	ttlNoExpiry = time.Duration(-1)
)

type TokenGate interface {
	Check(ctx context.Context, token string) (models.TokenStatus, error)
	Ping(ctx context.Context) error
	Close() error
}

// Auth is the redis-backed TokenGate. Tokens are provisioned elsewhere; it
// only reads them.
type Auth struct {
	redis   *redis.Client
	timeout time.Duration
}

func NewAuth(config *Config) (*Auth, error) {
	auth, err := newAuthClient(config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), auth.timeout)
	defer cancel()
	if err := auth.Ping(ctx); err != nil {
		auth.Close()
		return nil, err
	}

	return auth, nil
}

func newAuthClient(config *Config) (*Auth, error) {
	opt, err := redis.ParseURL(config.RedisAddress())
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	// socket deadlines follow the lookup context instead of the 3s default
	opt.ContextTimeoutEnabled = true

	return &Auth{
		redis:   redis.NewClient(opt),
		timeout: config.Auth.LookupTimeout.Std(),
	}, nil
}

func (a *Auth) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func (a *Auth) Ping(ctx context.Context) error {
	if err := a.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

// Check reports whether token exists and how long it has left. A redis
// failure is returned as an error, never as an invalid token.
func (a *Auth) Check(ctx context.Context, token string) (models.TokenStatus, error) {
	start := time.Now()
	status := models.TokenStatus{Token: token}
	masked := models.MaskToken(token)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	pipe := a.redis.Pipeline()
	get := pipe.Get(ctx, token)
	ttl := pipe.TTL(ctx, token)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		observeDependency("redis", start, err)
		logger.Error.Printf("Redis error while checking token %s: %v", masked, err)
		return status, fmt.Errorf("redis error: %w", err)
	}
	observeDependency("redis", start, nil)

	if err := get.Err(); errors.Is(err, redis.Nil) {
		logger.Debug.Printf("Token not found: %s", masked)
		return status, nil
	} else if err != nil {
		return status, fmt.Errorf("redis error: %w", err)
	}

	remaining, err := ttl.Result()
	if err != nil {
		return status, fmt.Errorf("redis error: %w", err)
	}

	status = statusFromTTL(token, remaining)
	if !status.Valid {
		logger.Debug.Printf("Token expired between GET and TTL: %s", masked)
	}
	return status, nil
}

// statusFromTTL interprets the TTL reply for a token whose GET succeeded.
func statusFromTTL(token string, remaining time.Duration) models.TokenStatus {
	status := models.TokenStatus{Token: token}
	switch {
	case remaining == ttlMissing:
		return status
	case remaining == ttlNoExpiry:
		status.NoExpiry = true
	default:
		status.TTL = remaining
	}
	status.Valid = true
	return status
}

func observeDependency(dependency string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.DependencyDuration.WithLabelValues(dependency, result).Observe(time.Since(start).Seconds())
}
