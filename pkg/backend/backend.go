// Package backend selects and opens a formz.Storage from configuration,
// typically loaded from environment variables.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	goredis "github.com/redis/go-redis/v9"
	"github.com/zoobzio/formz"
	"github.com/zoobzio/formz/pkg/file"
	"github.com/zoobzio/formz/pkg/redis"
	"github.com/zoobzio/formz/pkg/sqlite"
)

// Kind names a storage backend.
type Kind string

// Supported backends.
const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

// Config describes which backend to open and how.
type Config struct {
	Kind Kind `env:"FORMZ_STORAGE" envDefault:"memory"`

	// Path is the document path for file and the database path for sqlite.
	Path string `env:"FORMZ_STORAGE_PATH"`

	// Watch keeps a file backend in sync with external edits.
	Watch bool `env:"FORMZ_STORAGE_WATCH" envDefault:"false"`

	RedisAddr      string        `env:"FORMZ_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB        int           `env:"FORMZ_REDIS_DB" envDefault:"0"`
	RedisNamespace string        `env:"FORMZ_REDIS_NAMESPACE"`
	RedisTTL       time.Duration `env:"FORMZ_REDIS_TTL" envDefault:"0s"`
}

// ParseEnv loads a Config from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Backend is an opened storage with its release function.
type Backend struct {
	formz.Storage
	close func() error
}

// Close releases resources held by the backend.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open opens the backend described by cfg. The context bounds any
// background watch started for the file backend.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	switch cfg.Kind {
	case KindMemory, "":
		return &Backend{Storage: formz.NewMemoryStorage()}, nil

	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file backend: FORMZ_STORAGE_PATH is required")
		}
		store, err := file.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("file backend: %w", err)
		}
		if cfg.Watch {
			if err := store.Watch(ctx); err != nil {
				return nil, fmt.Errorf("file backend: %w", err)
			}
		}
		return &Backend{Storage: store}, nil

	case KindSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite backend: %w", err)
		}
		return &Backend{Storage: store, close: store.Close}, nil

	case KindRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		opts := []redis.Option{redis.WithTTL(cfg.RedisTTL)}
		if cfg.RedisNamespace != "" {
			opts = append(opts, redis.WithNamespace(cfg.RedisNamespace))
		}
		return &Backend{Storage: redis.New(client, opts...), close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Kind)
	}
}

// OpenEnv parses the environment and opens the configured backend.
func OpenEnv(ctx context.Context) (*Backend, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg)
}
