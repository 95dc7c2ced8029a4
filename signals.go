package formz

import "github.com/zoobzio/capitan"

// Field interaction signals.
var (
	// FieldChanged is emitted when a user edit commits a new value.
	FieldChanged = capitan.NewSignal(
		"formz.field.changed",
		"Field value changed by user edit",
	)

	// FieldValueSet is emitted when a value is set imperatively.
	FieldValueSet = capitan.NewSignal(
		"formz.field.value.set",
		"Field value set imperatively",
	)

	// FieldBlurred is emitted when a field loses focus.
	FieldBlurred = capitan.NewSignal(
		"formz.field.blurred",
		"Field lost focus",
	)

	// FieldReset is emitted when a field is restored to its initial state.
	FieldReset = capitan.NewSignal(
		"formz.field.reset",
		"Field reset to initial state",
	)

	// FieldErrorSet is emitted when an error is overridden directly.
	FieldErrorSet = capitan.NewSignal(
		"formz.field.error.set",
		"Field error overridden",
	)

	// FieldStatusChanged is emitted when a field transitions between statuses.
	FieldStatusChanged = capitan.NewSignal(
		"formz.field.status.changed",
		"Field validation status transition",
	)

	// FieldViewAttached is emitted when a view is bound to a field.
	FieldViewAttached = capitan.NewSignal(
		"formz.field.view.attached",
		"View attached to field",
	)

	// FieldViewDetached is emitted when a view is unbound from a field.
	FieldViewDetached = capitan.NewSignal(
		"formz.field.view.detached",
		"View detached from field",
	)
)

// Validation signals.
var (
	// FieldValidationStarted is emitted when validation is triggered.
	FieldValidationStarted = capitan.NewSignal(
		"formz.field.validation.started",
		"Field validation started",
	)

	// FieldValidationSucceeded is emitted when the latest validation passes.
	FieldValidationSucceeded = capitan.NewSignal(
		"formz.field.validation.succeeded",
		"Field validation succeeded",
	)

	// FieldValidationFailed is emitted when the latest validation fails.
	FieldValidationFailed = capitan.NewSignal(
		"formz.field.validation.failed",
		"Field validation failed",
	)

	// FieldValidationStale is emitted when a superseded validation completes
	// and its outcome is discarded.
	FieldValidationStale = capitan.NewSignal(
		"formz.field.validation.stale",
		"Superseded validation outcome discarded",
	)
)

// Persistence signals.
var (
	// FieldPersistLoaded is emitted when a persisted value is loaded.
	FieldPersistLoaded = capitan.NewSignal(
		"formz.field.persist.loaded",
		"Persisted value loaded",
	)

	// FieldPersistLoadFailed is emitted when a persisted value cannot be
	// read or decoded. The field keeps its current value.
	FieldPersistLoadFailed = capitan.NewSignal(
		"formz.field.persist.load.failed",
		"Persisted value load failed",
	)

	// FieldPersistSaveFailed is emitted when a value cannot be written.
	FieldPersistSaveFailed = capitan.NewSignal(
		"formz.field.persist.save.failed",
		"Persisted value save failed",
	)
)

// Form signals.
var (
	// FormSubmitted is emitted when a form triggers validation of all fields.
	FormSubmitted = capitan.NewSignal(
		"formz.form.submitted",
		"Form submitted",
	)

	// FormSettled is emitted once every field validation triggered by a
	// submit has resolved.
	FormSettled = capitan.NewSignal(
		"formz.form.settled",
		"Form validations settled",
	)
)
