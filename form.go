package formz

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/zoobzio/capitan"
)

// Form composes a fixed, ordered set of Fields into aggregated validity,
// interaction and data views. It only reads field snapshots and never
// reaches into a field's internal state.
type Form struct {
	fields []*Field
	byName map[string]*Field

	mu         sync.Mutex
	version    uint64
	last       FormSnapshot
	submitting bool
	triggering bool
	submitCtx  context.Context

	notify  notifier[FormSnapshot]
	cancels []func()
}

// NewForm creates a Form over the given fields. Field names must be unique;
// a duplicate returns ErrDuplicateField. Fields cannot be added or removed
// afterwards.
func NewForm(fields ...*Field) (*Form, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	byName := make(map[string]*Field, len(fields))
	for i, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("field %d is nil", i)
		}
		if _, exists := byName[f.Name()]; exists {
			return nil, fmt.Errorf("field %q: %w", f.Name(), ErrDuplicateField)
		}
		byName[f.Name()] = f
	}

	fm := &Form{
		fields: append([]*Field(nil), fields...),
		byName: byName,
	}
	fm.last = fm.compute()

	fm.cancels = make([]func(), 0, len(fields))
	for _, f := range fm.fields {
		fm.cancels = append(fm.cancels, f.Watch(func(Snapshot) {
			fm.refresh()
		}))
	}

	return fm, nil
}

// MustForm is like NewForm but panics on a configuration error.
func MustForm(fields ...*Field) *Form {
	fm, err := NewForm(fields...)
	if err != nil {
		panic(fmt.Sprintf("formz: %v", err))
	}
	return fm
}

// Fields returns the fields in construction order.
func (fm *Form) Fields() []*Field {
	return append([]*Field(nil), fm.fields...)
}

// Field returns the field with the given name.
func (fm *Form) Field(name string) (*Field, bool) {
	f, ok := fm.byName[name]
	return f, ok
}

// Snapshot returns the aggregate computed from the current field states.
func (fm *Form) Snapshot() FormSnapshot {
	return fm.compute()
}

// AllValid reports whether every field is valid.
func (fm *Form) AllValid() bool { return fm.compute().AllValid }

// AnyTouched reports whether any field has been touched.
func (fm *Form) AnyTouched() bool { return fm.compute().AnyTouched }

// AnyDirty reports whether any field is dirty.
func (fm *Form) AnyDirty() bool { return fm.compute().AnyDirty }

// AnyValidating reports whether any field validation is in flight.
func (fm *Form) AnyValidating() bool { return fm.compute().AnyValidating }

// Data maps every field name to its current normalized value.
func (fm *Form) Data() map[string]string { return fm.compute().Data }

// Submit triggers validation of every field. Validations run concurrently
// and settle independently; Submit does not wait for or inspect their
// outcomes. Observe AllValid, Watch or the FormSettled signal afterwards.
func (fm *Form) Submit(ctx context.Context) {
	fm.mu.Lock()
	fm.submitting = true
	fm.triggering = true
	fm.submitCtx = context.WithoutCancel(ctx)
	fm.mu.Unlock()

	capitan.Emit(ctx, FormSubmitted, KeyFieldCount.Field(len(fm.fields)))

	for _, f := range fm.fields {
		f.Validate(ctx)
	}

	fm.mu.Lock()
	fm.triggering = false
	fm.mu.Unlock()

	fm.checkSettled()
}

// Reset resets every field.
func (fm *Form) Reset(ctx context.Context) {
	for _, f := range fm.fields {
		f.Reset(ctx)
	}
}

// Watch registers fn to be called whenever the aggregate changes.
// The returned function cancels the subscription.
func (fm *Form) Watch(fn func(FormSnapshot)) (cancel func()) {
	return fm.notify.subscribe(fn)
}

// Close releases the form's subscriptions to its fields. The form remains
// readable but Watch subscribers stop receiving updates.
func (fm *Form) Close() {
	fm.mu.Lock()
	cancels := fm.cancels
	fm.cancels = nil
	fm.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// refresh recomputes the aggregate after a field change and publishes it
// when it differs from the last published one.
func (fm *Form) refresh() {
	fm.mu.Lock()
	snap := fm.compute()
	if formSnapshotsEqual(fm.last, snap) {
		fm.mu.Unlock()
		fm.checkSettled()
		return
	}
	fm.last = snap
	fm.version++
	version := fm.version
	fm.mu.Unlock()

	fm.notify.publish(version, snap)
	fm.checkSettled()
}

// checkSettled emits FormSettled once all validations triggered by the
// current submit have resolved.
func (fm *Form) checkSettled() {
	fm.mu.Lock()
	if !fm.submitting || fm.triggering {
		fm.mu.Unlock()
		return
	}
	snap, valid := fm.aggregate()
	if snap.AnyValidating {
		fm.mu.Unlock()
		return
	}
	fm.submitting = false
	ctx := fm.submitCtx
	fm.mu.Unlock()

	capitan.Emit(ctx, FormSettled,
		KeyFieldCount.Field(len(fm.fields)),
		KeyValidCount.Field(valid),
	)
}

// compute aggregates the current field snapshots.
func (fm *Form) compute() FormSnapshot {
	snap, _ := fm.aggregate()
	return snap
}

// aggregate reads each field snapshot once and returns the aggregate with
// the number of valid fields it was computed from.
func (fm *Form) aggregate() (FormSnapshot, int) {
	snap := FormSnapshot{
		AllValid: true,
		Data:     make(map[string]string, len(fm.fields)),
	}
	valid := 0
	for _, f := range fm.fields {
		s := f.Snapshot()
		if s.IsValid() {
			valid++
		}
		snap.AllValid = snap.AllValid && s.IsValid()
		snap.AnyTouched = snap.AnyTouched || s.IsTouched
		snap.AnyDirty = snap.AnyDirty || s.IsDirty
		snap.AnyValidating = snap.AnyValidating || s.IsValidating
		snap.Data[s.Name] = s.NormalizedValue
	}
	return snap, valid
}

func formSnapshotsEqual(a, b FormSnapshot) bool {
	return a.AllValid == b.AllValid &&
		a.AnyTouched == b.AnyTouched &&
		a.AnyDirty == b.AnyDirty &&
		a.AnyValidating == b.AnyValidating &&
		maps.Equal(a.Data, b.Data)
}
