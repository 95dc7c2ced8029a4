package formz

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsValidationError(t *testing.T) {
	if asValidationError(nil) != nil {
		t.Error("expected nil for nil error")
	}

	verr := Required("missing")
	if got := asValidationError(verr); got != verr {
		t.Errorf("expected same ValidationError, got %v", got)
	}

	wrapped := fmt.Errorf("lookup: %w", NewValidationError(KindOther, "taken"))
	if got := asValidationError(wrapped); got == nil || got.Message != "taken" {
		t.Errorf("expected unwrapped ValidationError, got %v", got)
	}

	got := asValidationError(errors.New("network down"))
	if got.Kind != KindOther {
		t.Errorf("expected other kind, got %s", got.Kind)
	}
	if got.Message != "network down" {
		t.Errorf("expected 'network down', got %q", got.Message)
	}
}

func TestValidationError_Error(t *testing.T) {
	var nilErr *ValidationError
	if nilErr.Error() != "" {
		t.Error("expected empty message for nil error")
	}
	if Required("x").Error() != "x" {
		t.Error("expected message as error text")
	}
	if Required("x").Kind != KindRequired {
		t.Error("expected required kind")
	}
}
