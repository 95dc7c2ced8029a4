package formz

import (
	"context"
	"testing"
)

func TestNFC(t *testing.T) {
	if got := NFC("e\u0301"); got != "\u00e9" {
		t.Errorf("expected composed form, got %q", got)
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  Me@Example.COM "); got != "me@example.com" {
		t.Errorf("expected 'me@example.com', got %q", got)
	}
	if Fold("CAF\u00c9") != Fold("cafe\u0301") {
		t.Error("expected composed and decomposed input to fold equal")
	}
}

func TestFold_AsFieldNormalizer(t *testing.T) {
	ctx := context.Background()
	f := NewField("email", WithNormalize(Fold))

	f.Change(ctx, " Me@Example.com")

	if f.Value() != " Me@Example.com" {
		t.Errorf("expected raw value kept, got %q", f.Value())
	}
	if f.NormalizedValue() != "me@example.com" {
		t.Errorf("expected folded value, got %q", f.NormalizedValue())
	}
}
