package formz

import "errors"

// Kind discriminates validation failures.
type Kind string

const (
	// KindRequired marks a failure caused by a missing value.
	KindRequired Kind = "required"

	// KindOther covers every other rule violation (length, format, ...).
	KindOther Kind = "other"
)

// ValidationError is the structured failure produced by a Validator.
// The controller only depends on Kind and Message, never on the library
// that produced them.
type ValidationError struct {
	Kind    Kind
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NewValidationError creates a ValidationError of the given kind.
func NewValidationError(kind Kind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// Required creates a KindRequired ValidationError.
func Required(message string) *ValidationError {
	return NewValidationError(KindRequired, message)
}

// asValidationError converts any adapter error into a ValidationError.
// Errors that are not ValidationErrors are treated as KindOther.
func asValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) && ve != nil {
		return ve
	}
	return &ValidationError{Kind: KindOther, Message: err.Error()}
}

// Configuration errors. These indicate wiring bugs and are returned
// immediately rather than tolerated.
var (
	// ErrDuplicateField is returned by NewForm when two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrNoFields is returned by NewForm when no fields are given.
	ErrNoFields = errors.New("form requires at least one field")

	// ErrIncompatibleView is returned by Attach when the view cannot be bound.
	ErrIncompatibleView = errors.New("incompatible view")

	// ErrNotFound is returned by Storage.Load when a key has no entry.
	ErrNotFound = errors.New("storage: key not found")
)
