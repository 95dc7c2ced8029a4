package formz

import "github.com/zoobzio/capitan"

// Field keys for formz events.
var (
	// KeyField is the name of the field emitting the event.
	KeyField = capitan.NewStringKey("field")

	// KeyStorageKey is the storage key of a persisted field.
	KeyStorageKey = capitan.NewStringKey("storage_key")

	// KeyOldStatus is the status before a transition.
	KeyOldStatus = capitan.NewStringKey("old_status")

	// KeyNewStatus is the status after a transition.
	KeyNewStatus = capitan.NewStringKey("new_status")

	// KeyKind is the kind of a validation error.
	KeyKind = capitan.NewStringKey("kind")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeySequence is the sequence number of a validation run.
	KeySequence = capitan.NewIntKey("sequence")

	// KeyDuration is how long a validation took.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyFieldCount is the number of fields in a form.
	KeyFieldCount = capitan.NewIntKey("field_count")

	// KeyValidCount is the number of valid fields in a form.
	KeyValidCount = capitan.NewIntKey("valid_count")
)
