package formz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// errValidationTimeout is the outcome of a validation exceeding its timeout.
var errValidationTimeout = &ValidationError{Kind: KindOther, Message: "validation timed out"}

// Field tracks one input's value, validation error and interaction flags,
// and optionally mirrors committed values to durable storage.
//
// All mutations are atomic: a reader never observes a value, error or flag
// combination that was not produced by a single operation.
type Field struct {
	name      string
	key       string
	storage   Storage
	validator Validator
	transform func(string) string
	normalize func(string) string
	codec     Codec
	clock     clockz.Clock
	metrics   MetricsProvider
	timeout   time.Duration
	syncMode  bool
	history   *failureLog

	mu         sync.Mutex
	view       View
	viewGen    uint64
	value      string
	err        *ValidationError
	dirty      bool
	touched    bool
	status     Status
	seq        uint64
	validating bool
	version    uint64
	commits    uint64

	saveMu sync.Mutex
	saved  uint64

	notify notifier[Snapshot]
}

// NewField creates a Field with the given name. The name is fixed for the
// life of the field and is used as the form data key and storage key suffix.
//
// Example:
//
//	email := formz.NewField("email",
//	    formz.WithPrefix("login"),
//	    formz.WithPersist(storage),
//	    formz.WithValidator(formz.NewTagValidator("required,email")),
//	)
func NewField(name string, opts ...Option) *Field {
	cfg := &config{
		transform: identity,
		normalize: identity,
		codec:     JSONCodec{},
		clock:     clockz.RealClock,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	validator := cfg.validator
	if validator == nil {
		validator = passthrough
	}

	return &Field{
		name:      name,
		key:       StorageKey(cfg.prefix, name),
		storage:   cfg.storage,
		validator: validator,
		transform: cfg.transform,
		normalize: cfg.normalize,
		codec:     cfg.codec,
		clock:     cfg.clock,
		metrics:   cfg.metrics,
		timeout:   cfg.validationTimeout,
		syncMode:  cfg.syncMode,
		history:   newFailureLog(cfg.historySize),
	}
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// StorageKey returns the key under which the field persists its value.
func (f *Field) StorageKey() string {
	return f.key
}

// Persisted reports whether the field mirrors its value to storage.
func (f *Field) Persisted() bool {
	return f.storage != nil
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Snapshot returns a consistent copy of the field state.
func (f *Field) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Value returns the current committed value.
func (f *Field) Value() string { return f.Snapshot().Value }

// NormalizedValue returns the normalized form of the current value.
func (f *Field) NormalizedValue() string { return f.Snapshot().NormalizedValue }

// Error returns the current validation error, or nil when the field is valid.
func (f *Field) Error() *ValidationError { return f.Snapshot().Error }

// ErrorMessage returns the current error message, or "" when valid.
func (f *Field) ErrorMessage() string { return f.Snapshot().ErrorMessage() }

// IsValid reports whether the field holds no error.
func (f *Field) IsValid() bool { return f.Snapshot().IsValid() }

// IsRequiredError reports whether the current error is a KindRequired failure.
func (f *Field) IsRequiredError() bool { return f.Snapshot().IsRequiredError() }

// IsValidating reports whether the most recent validation is in flight.
func (f *Field) IsValidating() bool { return f.Snapshot().IsValidating }

// IsDirty reports whether the value changed by user edit since construction or reset.
func (f *Field) IsDirty() bool { return f.Snapshot().IsDirty }

// IsTouched reports whether the field lost focus since construction or reset.
func (f *Field) IsTouched() bool { return f.Snapshot().IsTouched }

// Status returns the validation status.
func (f *Field) Status() Status { return f.Snapshot().Status }

// Mount returns whether a view is attached.
func (f *Field) Mount() Mount { return f.Snapshot().Mount }

// ErrorHistory returns recent validation failures, oldest first.
// Returns nil if error history is not enabled (see WithErrorHistory).
func (f *Field) ErrorHistory() []*ValidationError {
	return f.history.all()
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// Change commits a user edit: the transformed value becomes current and the
// field is marked dirty. Validation is not triggered. When persistence is
// enabled the value is written to storage before Change returns; write
// failures are reported through signals and metrics only.
func (f *Field) Change(ctx context.Context, value string) {
	f.mu.Lock()
	f.value = f.transform(value)
	f.dirty = true
	f.commits++
	commit := f.commits
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	capitan.Emit(ctx, FieldChanged, KeyField.Field(f.name))
	if f.metrics != nil {
		f.metrics.OnChange(f.name)
	}
	f.save(ctx, commit, snap.Value)
}

// HandleChange adapts a UI change event to Change.
func (f *Field) HandleChange(ctx context.Context, evt ChangeEvent) {
	f.Change(ctx, evt.Value)
}

// Blur marks the field as touched.
func (f *Field) Blur(ctx context.Context) {
	f.mu.Lock()
	f.touched = true
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	capitan.Emit(ctx, FieldBlurred, KeyField.Field(f.name))
}

// HandleBlur adapts a UI blur event to Blur.
func (f *Field) HandleBlur(ctx context.Context, _ BlurEvent) {
	f.Blur(ctx)
}

// SetValue commits a value without marking the field dirty and pushes the
// normalized value into the attached view, if any. Persistence applies as
// for Change.
func (f *Field) SetValue(ctx context.Context, value string) {
	f.mu.Lock()
	f.value = f.transform(value)
	f.commits++
	commit := f.commits
	view := f.view
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	if view != nil {
		view.SetValue(snap.NormalizedValue)
	}
	capitan.Emit(ctx, FieldValueSet, KeyField.Field(f.name))
	f.save(ctx, commit, snap.Value)
}

// SetError overrides the current error, bypassing validation. Use it for
// server-side or cross-field errors. A nil error clears the field.
//
// SetError does not supersede a validation in flight: its outcome still
// lands when it completes.
func (f *Field) SetError(ctx context.Context, verr *ValidationError) {
	f.mu.Lock()
	old := f.status
	f.err = verr
	switch {
	case f.validating:
	case verr != nil:
		f.status = StatusInvalid
	case f.status == StatusInvalid:
		f.status = StatusValid
	}
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	f.history.push(verr)
	f.transitionStatus(ctx, old, snap.Status)
	capitan.Emit(ctx, FieldErrorSet,
		KeyField.Field(f.name),
		KeyError.Field(snap.ErrorMessage()),
	)
}

// Reset restores value, error and flags to their initial state in a single
// step. Validations in flight are superseded and their outcomes discarded.
// The persisted value is left untouched and a pending load is discarded.
func (f *Field) Reset(ctx context.Context) {
	f.mu.Lock()
	old := f.status
	f.value = ""
	f.err = nil
	f.dirty = false
	f.touched = false
	f.validating = false
	f.status = StatusNotValidated
	f.seq++
	f.commits++
	snap := f.commitLocked()
	f.mu.Unlock()

	f.history.clear()
	f.notify.publish(snap.version, snap)
	f.transitionStatus(ctx, old, snap.Status)
	capitan.Emit(ctx, FieldReset, KeyField.Field(f.name))
}

// Focus requests input focus on the attached view. No-op when unmounted.
func (f *Field) Focus(_ context.Context) {
	f.mu.Lock()
	view := f.view
	f.mu.Unlock()

	if view != nil {
		view.Focus()
	}
}

// Attach binds a view to the field; a nil view detaches the current one.
//
// Binding tags the view with the field name and, when persistence is enabled,
// loads the stored value once. A loaded value is committed without marking
// the field dirty and pushed into the view. Missing or unreadable entries
// leave the value unchanged.
//
// Attaching a typed nil (for example a nil pointer) returns ErrIncompatibleView.
func (f *Field) Attach(ctx context.Context, view View) error {
	if view == nil {
		f.detach(ctx)
		return nil
	}
	if isNilView(view) {
		return fmt.Errorf("attach %q: %w", f.name, ErrIncompatibleView)
	}

	f.mu.Lock()
	f.view = view
	f.viewGen++
	gen := f.viewGen
	commits := f.commits
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	view.SetAttribute("name", f.name)
	capitan.Emit(ctx, FieldViewAttached, KeyField.Field(f.name))

	if f.storage != nil {
		if f.syncMode {
			f.load(ctx, gen, commits)
		} else {
			go f.load(ctx, gen, commits)
		}
	}
	return nil
}

func (f *Field) detach(ctx context.Context) {
	f.mu.Lock()
	if f.view == nil {
		f.mu.Unlock()
		return
	}
	f.view = nil
	f.viewGen++
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	capitan.Emit(ctx, FieldViewDetached, KeyField.Field(f.name))
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

// Validate validates the current value asynchronously. While the latest
// validation is in flight IsValidating reports true.
//
// Each call supersedes the previous one: only the outcome of the most
// recently triggered validation is applied, regardless of completion order.
// The validator runs with a context that is not canceled with ctx.
func (f *Field) Validate(ctx context.Context) {
	f.mu.Lock()
	old := f.status
	f.seq++
	seq := f.seq
	value := f.value
	f.validating = true
	f.status = StatusValidating
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	f.transitionStatus(ctx, old, StatusValidating)
	capitan.Emit(ctx, FieldValidationStarted,
		KeyField.Field(f.name),
		KeySequence.Field(int(seq)),
	)

	vctx := context.WithoutCancel(ctx)
	if f.syncMode {
		f.runValidation(vctx, seq, value)
		return
	}
	go f.runValidation(vctx, seq, value)
}

// runValidation calls the validator and applies the outcome if seq is
// still the latest validation.
func (f *Field) runValidation(ctx context.Context, seq uint64, value string) {
	start := f.clock.Now()
	verr := asValidationError(f.callValidator(ctx, value))
	elapsed := f.clock.Since(start)

	f.mu.Lock()
	if seq != f.seq {
		f.mu.Unlock()
		capitan.Emit(ctx, FieldValidationStale,
			KeyField.Field(f.name),
			KeySequence.Field(int(seq)),
		)
		return
	}
	old := f.status
	f.validating = false
	f.err = verr
	if verr == nil {
		f.status = StatusValid
	} else {
		f.status = StatusInvalid
	}
	snap := f.commitLocked()
	f.mu.Unlock()

	if verr == nil {
		f.history.clear()
	} else {
		f.history.push(verr)
	}
	f.notify.publish(snap.version, snap)
	f.transitionStatus(ctx, old, snap.Status)

	if verr == nil {
		capitan.Emit(ctx, FieldValidationSucceeded,
			KeyField.Field(f.name),
			KeyDuration.Field(elapsed),
		)
		if f.metrics != nil {
			f.metrics.OnValidationSuccess(f.name, elapsed)
		}
		return
	}
	capitan.Emit(ctx, FieldValidationFailed,
		KeyField.Field(f.name),
		KeyKind.Field(string(verr.Kind)),
		KeyError.Field(verr.Message),
		KeyDuration.Field(elapsed),
	)
	if f.metrics != nil {
		f.metrics.OnValidationFailure(f.name, verr.Kind, elapsed)
	}
}

// callValidator invokes the validator, bounded by the validation timeout
// when one is configured.
func (f *Field) callValidator(ctx context.Context, value string) error {
	if f.timeout <= 0 {
		_, err := f.validator.Validate(ctx, value)
		return err
	}

	tctx, cancel := f.clock.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := f.validator.Validate(tctx, value)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return errValidationTimeout
		}
		return err
	case <-tctx.Done():
		return errValidationTimeout
	}
}

// -----------------------------------------------------------------------------
// Persistence
// -----------------------------------------------------------------------------

// save writes a committed value to storage. Writes are serialized and a
// value older than one already written is skipped.
func (f *Field) save(ctx context.Context, commit uint64, value string) {
	if f.storage == nil {
		return
	}
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	if commit <= f.saved {
		return
	}
	f.saved = commit

	data, err := encodeValue(f.codec, value)
	if err == nil {
		err = f.storage.Save(ctx, f.key, data)
	}
	if err != nil {
		capitan.Emit(ctx, FieldPersistSaveFailed,
			KeyField.Field(f.name),
			KeyStorageKey.Field(f.key),
			KeyError.Field(err.Error()),
		)
		if f.metrics != nil {
			f.metrics.OnPersistFailure(f.name, "save")
		}
	}
}

// load reads the persisted value for the view attached at generation gen.
// The result is dropped when the view changed or a value was committed or
// reset since the attach, so a stored value never overwrites a newer one.
func (f *Field) load(ctx context.Context, gen, commits uint64) {
	ctx = context.WithoutCancel(ctx)

	data, err := f.storage.Load(ctx, f.key)
	if errors.Is(err, ErrNotFound) {
		return
	}
	var value string
	if err == nil {
		value, err = decodeValue(f.codec, data)
	}
	if err != nil {
		capitan.Emit(ctx, FieldPersistLoadFailed,
			KeyField.Field(f.name),
			KeyStorageKey.Field(f.key),
			KeyError.Field(err.Error()),
		)
		if f.metrics != nil {
			f.metrics.OnPersistFailure(f.name, "load")
		}
		return
	}

	f.mu.Lock()
	if f.viewGen != gen || f.view == nil || f.commits != commits {
		f.mu.Unlock()
		return
	}
	f.value = value
	f.commits++
	view := f.view
	snap := f.commitLocked()
	f.mu.Unlock()

	f.notify.publish(snap.version, snap)
	view.SetValue(f.transform(value))
	capitan.Emit(ctx, FieldPersistLoaded,
		KeyField.Field(f.name),
		KeyStorageKey.Field(f.key),
	)
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

// commitLocked bumps the version and returns a snapshot. Callers hold f.mu.
func (f *Field) commitLocked() Snapshot {
	f.version++
	return f.snapshotLocked()
}

func (f *Field) snapshotLocked() Snapshot {
	mount := Unmounted
	if f.view != nil {
		mount = Mounted
	}
	return Snapshot{
		Name:            f.name,
		Value:           f.value,
		NormalizedValue: f.normalize(f.value),
		Error:           f.err,
		IsDirty:         f.dirty,
		IsTouched:       f.touched,
		IsValidating:    f.validating,
		Status:          f.status,
		Mount:           mount,
		version:         f.version,
	}
}

// transitionStatus emits a status change event if the status changed.
func (f *Field) transitionStatus(ctx context.Context, oldStatus, newStatus Status) {
	if oldStatus == newStatus {
		return
	}
	capitan.Emit(ctx, FieldStatusChanged,
		KeyField.Field(f.name),
		KeyOldStatus.Field(oldStatus.String()),
		KeyNewStatus.Field(newStatus.String()),
	)
	if f.metrics != nil {
		f.metrics.OnStatusChange(f.name, oldStatus, newStatus)
	}
}
