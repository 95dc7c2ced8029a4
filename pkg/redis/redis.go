// Package redis provides a formz.Storage implementation backed by Redis keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/formz"
)

// Store persists field values as Redis string keys.
type Store struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace prefixes every key with namespace and a colon, keeping
// field values apart from other data in the same database.
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		s.namespace = namespace
	}
}

// WithTTL expires stored values after d. Zero keeps them forever.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		s.ttl = d
	}
}

// New creates a Store using the given client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key used for a storage key.
func (s *Store) Key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Load returns the stored bytes for key, or formz.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, formz.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

// Save stores value under key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.Key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Ensure Store implements formz.Storage.
var _ formz.Storage = (*Store)(nil)
