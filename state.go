package formz

// Status represents the validation state of a Field.
type Status int32

const (
	// StatusNotValidated indicates the field has not been validated since
	// construction or the last reset.
	StatusNotValidated Status = iota

	// StatusValidating indicates the most recent validation is in flight.
	StatusValidating

	// StatusValid indicates the most recent outcome cleared the error.
	StatusValid

	// StatusInvalid indicates the field currently holds an error.
	StatusInvalid
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusNotValidated:
		return "not_validated"
	case StatusValidating:
		return "validating"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Mount describes whether a view is attached to a Field.
type Mount int32

const (
	// Unmounted indicates no view is attached.
	Unmounted Mount = iota

	// Mounted indicates a view is attached.
	Mounted
)

// String returns the string representation of the mount state.
func (m Mount) String() string {
	switch m {
	case Unmounted:
		return "unmounted"
	case Mounted:
		return "mounted"
	default:
		return "unknown"
	}
}
