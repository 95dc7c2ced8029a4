package formz

import (
	"context"
	"errors"
	"sync"
)

var errEmptyEntry = errors.New("storage: empty entry")

// Storage is a process-wide durable key/value store used for field
// persistence. Each field owns a disjoint key, see StorageKey.
type Storage interface {
	// Load returns the stored bytes for key, or ErrNotFound when absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores value under key, replacing any previous entry.
	Save(ctx context.Context, key string, value []byte) error
}

// StorageKey returns the storage key for a field: "<prefix>_<name>" when a
// prefix is configured, otherwise "<name>".
func StorageKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// MemoryStorage is an in-memory Storage. It is safe for concurrent use and
// is primarily useful for tests and single-process applications.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string][]byte)}
}

// Load returns a copy of the bytes stored under key.
func (m *MemoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Save stores a copy of value under key.
func (m *MemoryStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.entries[key] = v
	m.mu.Unlock()
	return nil
}

// Ensure MemoryStorage implements Storage.
var _ Storage = (*MemoryStorage)(nil)
