// Package testing provides test utilities and helpers for formz field testing.
package testing

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/formz"
)

// NewLengthValidator returns a validator requiring a non-empty value of at
// least minLen characters. Empty values fail with KindRequired, short values
// with KindOther.
func NewLengthValidator(minLen int) formz.Validator {
	return formz.NewTagValidator("required,min=" + strconv.Itoa(minLen)).
		Message("required", "field is required")
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForSettled waits until the field has no validation in flight.
func WaitForSettled(t *testing.T, f *formz.Field, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return !f.IsValidating()
	})
}

// WaitForStatus waits until the field reaches the expected status.
func WaitForStatus(t *testing.T, f *formz.Field, expected formz.Status, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return f.Status() == expected
	})
}

// RequireValid fails the test immediately if the field holds an error.
func RequireValid(t *testing.T, f *formz.Field) {
	t.Helper()
	if err := f.Error(); err != nil {
		t.Fatalf("expected %s to be valid, got %s error %q", f.Name(), err.Kind, err.Message)
	}
}

// RequireErrorKind fails the test immediately if the field does not hold an
// error of the expected kind.
func RequireErrorKind(t *testing.T, f *formz.Field, expected formz.Kind) {
	t.Helper()
	err := f.Error()
	if err == nil {
		t.Fatalf("expected %s error on %s, got none", expected, f.Name())
	}
	if err.Kind != expected {
		t.Fatalf("expected %s error on %s, got %s (%q)", expected, f.Name(), err.Kind, err.Message)
	}
}

// View is a formz.View that records every interaction. It is safe for
// concurrent use.
type View struct {
	mu         sync.Mutex
	attributes map[string]string
	values     []string
	focused    int
}

// NewView creates an empty recording View.
func NewView() *View {
	return &View{attributes: make(map[string]string)}
}

// SetAttribute implements formz.View.
func (v *View) SetAttribute(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attributes[name] = value
}

// SetValue implements formz.View.
func (v *View) SetValue(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values = append(v.values, value)
}

// Focus implements formz.View.
func (v *View) Focus() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused++
}

// Attribute returns a recorded attribute.
func (v *View) Attribute(name string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.attributes[name]
	return val, ok
}

// Value returns the last value pushed into the view, or "".
func (v *View) Value() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.values) == 0 {
		return ""
	}
	return v.values[len(v.values)-1]
}

// Values returns every value pushed into the view, in order.
func (v *View) Values() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.values...)
}

// FocusCount returns how many times focus was requested.
func (v *View) FocusCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}

// GatedValidator holds every validation until it is released, letting tests
// control completion order. Each call to Validate is assigned an index in
// call order.
type GatedValidator struct {
	inner formz.Validator

	mu    sync.Mutex
	gates []chan struct{}
	calls chan int
}

// NewGatedValidator wraps inner. A nil inner accepts every value.
func NewGatedValidator(inner formz.Validator) *GatedValidator {
	return &GatedValidator{
		inner: inner,
		calls: make(chan int, 64),
	}
}

// Validate blocks until the call is released, then delegates to inner.
func (g *GatedValidator) Validate(ctx context.Context, value string) (string, error) {
	g.mu.Lock()
	idx := len(g.gates)
	gate := make(chan struct{})
	g.gates = append(g.gates, gate)
	g.mu.Unlock()

	g.calls <- idx

	select {
	case <-gate:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if g.inner == nil {
		return value, nil
	}
	return g.inner.Validate(ctx, value)
}

// AwaitCall waits for the next call to start and returns its index.
func (g *GatedValidator) AwaitCall(t *testing.T, timeout time.Duration) int {
	t.Helper()
	select {
	case idx := <-g.calls:
		return idx
	case <-time.After(timeout):
		t.Fatal("timeout waiting for validation call")
		return -1
	}
}

// Release lets the call with the given index complete.
func (g *GatedValidator) Release(idx int) {
	g.mu.Lock()
	gate := g.gates[idx]
	g.mu.Unlock()
	close(gate)
}

// Ensure GatedValidator implements formz.Validator.
var _ formz.Validator = (*GatedValidator)(nil)
