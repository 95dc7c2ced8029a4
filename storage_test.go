package formz

import (
	"context"
	"errors"
	"testing"
)

func TestStorageKey(t *testing.T) {
	if k := StorageKey("login", "email"); k != "login_email" {
		t.Errorf("expected 'login_email', got %q", k)
	}
	if k := StorageKey("", "email"); k != "email" {
		t.Errorf("expected 'email', got %q", k)
	}
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()

	if _, err := m.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	buf := []byte(`"hello"`)
	if err := m.Save(ctx, "k", buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	buf[1] = 'X'

	got, err := m.Load(ctx, "k")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `"hello"` {
		t.Errorf("expected stored copy, got %q", got)
	}

	got[1] = 'Y'
	again, _ := m.Load(ctx, "k")
	if string(again) != `"hello"` {
		t.Errorf("expected Load to return a copy, got %q", again)
	}
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemoryStorage()

	if err := m.Save(ctx, "k", []byte(`""`)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := m.Load(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
