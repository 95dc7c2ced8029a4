package formz

// Snapshot is a consistent view of a Field at one point in time.
// All derived values are computed from the same state, so IsValid and
// Error can never disagree.
type Snapshot struct {
	Name            string
	Value           string
	NormalizedValue string
	Error           *ValidationError
	IsDirty         bool
	IsTouched       bool
	IsValidating    bool
	Status          Status
	Mount           Mount

	version uint64
}

// IsValid reports whether the snapshot holds no error.
func (s Snapshot) IsValid() bool {
	return s.Error == nil
}

// IsRequiredError reports whether the current error is a KindRequired failure.
func (s Snapshot) IsRequiredError() bool {
	return s.Error != nil && s.Error.Kind == KindRequired
}

// ErrorMessage returns the current error message, or "" when valid.
func (s Snapshot) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return s.Error.Message
}

// FormSnapshot is a consistent aggregate of every field in a Form.
type FormSnapshot struct {
	AllValid      bool
	AnyTouched    bool
	AnyDirty      bool
	AnyValidating bool
	Data          map[string]string
}
