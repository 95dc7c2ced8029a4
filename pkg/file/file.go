// Package file provides a formz.Storage implementation backed by a JSON
// document on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"
	"github.com/zoobzio/formz"
)

// Store persists field values as entries of a single JSON object. Entries
// are cached in memory; Watch keeps the cache in sync with edits made to
// the file by other processes.
type Store struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
}

// New creates a Store for the given path and loads any existing document.
// A missing file is treated as an empty document and created on first Save.
func New(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		entries: make(map[string]string),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored bytes for key, or formz.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, formz.ErrNotFound
	}
	return []byte(v), nil
}

// Save stores value under key and rewrites the document.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = string(value)
	return s.writeLocked()
}

// Watch reloads the cache whenever the document is written by another
// process. It returns once the watch is established; watching stops when
// ctx is canceled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory: Save replaces the file via rename, which would
	// drop a watch on the file itself.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				_ = s.reload() //nolint:errcheck // keep the previous cache on a partial write

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return nil
}

// reload replaces the cache with the document contents.
func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	entries := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode %s: %w", s.path, err)
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// writeLocked writes the document atomically. Callers hold s.mu.
func (s *Store) writeLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".formz-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Ensure Store implements formz.Storage.
var _ formz.Storage = (*Store)(nil)
