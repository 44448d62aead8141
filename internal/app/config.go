package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/store"
	"github.com/shrimpsizemoose/precate/internal/store/oracle"
)

// Duration reads "2s"-style strings from TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server struct {
		Port      string `toml:"port" validate:"required"`
		URLPrefix string `toml:"url_prefix" validate:"required,startswith=/,endswith=/"`
	} `toml:"server"`

	Auth struct {
		RedisURL      string   `toml:"redis_url"`
		RedisHost     string   `toml:"redis_host"`
		RedisPort     string   `toml:"redis_port"`
		LookupTimeout Duration `toml:"lookup_timeout" validate:"gt=0"`
	} `toml:"auth"`

	Database struct {
		DSN             string   `toml:"dsn"`
		Username        string   `toml:"username"`
		Password        string   `toml:"password"`
		URL             string   `toml:"url"`
		QueryTimeout    Duration `toml:"query_timeout" validate:"gt=0"`
		ConnectAttempts uint64   `toml:"connect_attempts" validate:"gte=1"`
		MaxOpenConns    int      `toml:"max_open_conns" validate:"gte=0"`
		MaxIdleConns    int      `toml:"max_idle_conns" validate:"gte=0"`
		ConnMaxLifetime Duration `toml:"conn_max_lifetime" validate:"gte=0"`
	} `toml:"database"`
}

// DefaultConfig mirrors the literal defaults of the legacy deployment.
func DefaultConfig() *Config {
	var config Config
	config.Server.Port = ":8000"
	config.Server.URLPrefix = "/maintain/export-pre-cate/"

	config.Auth.RedisHost = "127.0.0.1"
	config.Auth.RedisPort = "6379"
	config.Auth.LookupTimeout = Duration(2 * time.Second)

	config.Database.Username = "username"
	config.Database.Password = "password"
	config.Database.URL = "127.0.0.1:1521/orcl"
	config.Database.QueryTimeout = Duration(10 * time.Second)
	config.Database.ConnectAttempts = 5
	config.Database.MaxOpenConns = 25
	config.Database.MaxIdleConns = 25
	config.Database.ConnMaxLifetime = Duration(5 * time.Minute)

	return &config
}

// LoadConfig layers defaults, the optional TOML file at path and the
// environment, in that order.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug.Printf("Config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("error reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf(
					"error reading config file %s\n> Error: %w\n> Content:\n%s",
					path,
					err,
					string(data),
				)
			}
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"SERVER_PORT":   &c.Server.Port,
		"URL_PREFIX":    &c.Server.URLPrefix,
		"REDIS_URL":     &c.Auth.RedisURL,
		"REDIS_HOST":    &c.Auth.RedisHost,
		"REDIS_PORT":    &c.Auth.RedisPort,
		"DATABASE_DSN":  &c.Database.DSN,
		"ORCL_USERNAME": &c.Database.Username,
		"ORCL_PASSWORD": &c.Database.Password,
		"ORCL_DBURL":    &c.Database.URL,
	}
	for name, field := range overrides {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			*field = value
		}
	}

	if value := os.Getenv("DB_CONNECT_ATTEMPTS"); value != "" {
		attempts, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DB_CONNECT_ATTEMPTS %q: %w", value, err)
		}
		c.Database.ConnectAttempts = attempts
	}

	return nil
}

// RedisAddress prefers an explicit URL over host/port.
func (c *Config) RedisAddress() string {
	if c.Auth.RedisURL != "" {
		return c.Auth.RedisURL
	}
	return fmt.Sprintf("redis://%s:%s/0", c.Auth.RedisHost, c.Auth.RedisPort)
}

// DBConfig falls back to the Oracle credentials when no DSN is set.
func (c *Config) DBConfig() *store.DBConfig {
	dsn := c.Database.DSN
	if dsn == "" {
		dsn = oracle.BuildDSN(c.Database.Username, c.Database.Password, c.Database.URL)
	}

	return &store.DBConfig{
		DSN:             dsn,
		Type:            store.DetectType(dsn),
		ConnectAttempts: c.Database.ConnectAttempts,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime.Std(),
	}
}
