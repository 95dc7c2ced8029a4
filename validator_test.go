package formz

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTagValidator_RequiredKind(t *testing.T) {
	_, err := NewTagValidator("required,min=5").Validate(context.Background(), "")

	verr := asValidationError(err)
	if verr == nil || verr.Kind != KindRequired {
		t.Fatalf("expected required error, got %v", err)
	}
	if verr.Message != "value is required" {
		t.Errorf("expected default message, got %q", verr.Message)
	}
}

func TestTagValidator_OtherKind(t *testing.T) {
	tests := []struct {
		tags    string
		value   string
		message string
	}{
		{tags: "min=5", value: "abc", message: "must be at least 5 characters"},
		{tags: "max=2", value: "abc", message: "must be at most 2 characters"},
		{tags: "len=4", value: "abc", message: "must be exactly 4 characters"},
		{tags: "email", value: "nope", message: "must be a valid email address"},
		{tags: "numeric", value: "abc", message: "failed numeric"},
		{tags: "oneof=a b", value: "c", message: "failed oneof=a b"},
	}

	for _, tt := range tests {
		t.Run(tt.tags, func(t *testing.T) {
			_, err := NewTagValidator(tt.tags).Validate(context.Background(), tt.value)

			verr := asValidationError(err)
			if verr == nil {
				t.Fatal("expected error")
			}
			if verr.Kind != KindOther {
				t.Errorf("expected other kind, got %s", verr.Kind)
			}
			if verr.Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, verr.Message)
			}
		})
	}
}

func TestTagValidator_Success(t *testing.T) {
	got, err := NewTagValidator("required,email").Validate(context.Background(), "me@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "me@example.com" {
		t.Errorf("expected value returned unchanged, got %q", got)
	}
}

func TestTagValidator_CustomMessage(t *testing.T) {
	v := NewTagValidator("required,min=3").
		Message("required", "enter a name").
		Message("min", "too short")

	_, err := v.Validate(context.Background(), "")
	if err.Error() != "enter a name" {
		t.Errorf("expected 'enter a name', got %q", err.Error())
	}

	_, err = v.Validate(context.Background(), "ab")
	if err.Error() != "too short" {
		t.Errorf("expected 'too short', got %q", err.Error())
	}
}

func TestTagValidator_UnknownTagPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown tag")
		}
	}()
	NewTagValidator("definitely_not_a_tag")
}

func TestChain(t *testing.T) {
	trim := ValidatorFunc(func(_ context.Context, v string) (string, error) {
		return strings.TrimSpace(v), nil
	})
	v := Chain(trim, NewTagValidator("required"))

	got, err := v.Validate(context.Background(), "  hi  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi" {
		t.Errorf("expected 'hi', got %q", got)
	}

	_, err = v.Validate(context.Background(), "   ")
	if verr := asValidationError(err); verr == nil || verr.Kind != KindRequired {
		t.Errorf("expected required error after trim, got %v", err)
	}
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	fail := ValidatorFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("boom")
	})
	count := ValidatorFunc(func(_ context.Context, v string) (string, error) {
		calls++
		return v, nil
	})

	_, err := Chain(fail, count).Validate(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 0 {
		t.Errorf("expected later validators skipped, got %d calls", calls)
	}
}

func TestPassthrough(t *testing.T) {
	got, err := passthrough.Validate(context.Background(), "anything")
	if err != nil || got != "anything" {
		t.Errorf("expected passthrough, got %q, %v", got, err)
	}
}
