package testing

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/formz"
)

func TestNewLengthValidator(t *testing.T) {
	v := NewLengthValidator(5)
	ctx := context.Background()

	tests := []struct {
		name     string
		value    string
		wantKind formz.Kind
		wantErr  bool
	}{
		{name: "empty", value: "", wantKind: formz.KindRequired, wantErr: true},
		{name: "too short", value: "abcd", wantKind: formz.KindOther, wantErr: true},
		{name: "long enough", value: "abcde", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(ctx, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			verr, ok := err.(*formz.ValidationError)
			if !ok {
				t.Fatalf("expected *formz.ValidationError, got %T", err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, verr.Kind)
			}
		})
	}
}

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false on timeout")
		}
	})
}

func TestView_Records(t *testing.T) {
	v := NewView()
	v.SetAttribute("name", "email")
	v.SetValue("a")
	v.SetValue("b")
	v.Focus()

	if name, ok := v.Attribute("name"); !ok || name != "email" {
		t.Errorf("expected name attribute 'email', got %q (ok=%v)", name, ok)
	}
	if v.Value() != "b" {
		t.Errorf("expected last value 'b', got %q", v.Value())
	}
	if got := v.Values(); len(got) != 2 {
		t.Errorf("expected 2 values, got %d", len(got))
	}
	if v.FocusCount() != 1 {
		t.Errorf("expected 1 focus, got %d", v.FocusCount())
	}
}

func TestRequireHelpers(t *testing.T) {
	ctx := context.Background()
	f := formz.NewField("pass", formz.WithValidator(NewLengthValidator(5)), formz.WithSyncMode())

	RequireValid(t, f)

	f.Validate(ctx)
	RequireErrorKind(t, f, formz.KindRequired)
}

func TestWaitForSettled_AsyncField(t *testing.T) {
	ctx := context.Background()
	gate := NewGatedValidator(NewLengthValidator(5))
	f := formz.NewField("email", formz.WithValidator(gate))

	f.Change(ctx, "abcd")
	f.Validate(ctx)
	idx := gate.AwaitCall(t, time.Second)

	if !f.IsValidating() {
		t.Error("expected field to be validating while gated")
	}
	if f.Status() != formz.StatusValidating {
		t.Errorf("expected validating status, got %s", f.Status())
	}

	gate.Release(idx)
	if !WaitForSettled(t, f, time.Second) {
		t.Fatal("timeout waiting for validation to settle")
	}
	RequireErrorKind(t, f, formz.KindOther)
}

func TestForm_SubmitSettlesRegardlessOfOrder(t *testing.T) {
	for _, order := range [][2]string{{"email", "pass"}, {"pass", "email"}} {
		t.Run(order[0]+"_first", func(t *testing.T) {
			ctx := context.Background()
			gates := map[string]*GatedValidator{
				"email": NewGatedValidator(NewLengthValidator(5)),
				"pass":  NewGatedValidator(NewLengthValidator(5)),
			}
			email := formz.NewField("email", formz.WithValidator(gates["email"]))
			pass := formz.NewField("pass", formz.WithValidator(gates["pass"]))
			form := formz.MustForm(email, pass)
			defer form.Close()

			email.Change(ctx, "someone@example.com")
			pass.Change(ctx, "abc")

			form.Submit(ctx)
			calls := map[string]int{
				"email": gates["email"].AwaitCall(t, time.Second),
				"pass":  gates["pass"].AwaitCall(t, time.Second),
			}

			if !form.AnyValidating() {
				t.Error("expected form to be validating after submit")
			}

			for _, name := range order {
				gates[name].Release(calls[name])
				f, _ := form.Field(name)
				if !WaitForSettled(t, f, time.Second) {
					t.Fatalf("timeout waiting for %s to settle", name)
				}
			}

			if form.AnyValidating() {
				t.Error("expected no validation in flight")
			}
			if form.AllValid() {
				t.Error("expected form to be invalid: pass is too short")
			}
			RequireValid(t, email)
			RequireErrorKind(t, pass, formz.KindOther)
		})
	}
}
