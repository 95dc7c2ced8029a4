// Package formz provides reactive field-state controllers for form inputs.
//
// The core type is Field, which tracks an input's current value, validation
// error and interaction flags, and optionally mirrors committed values to
// durable storage. Form composes a fixed set of Fields into aggregated
// validity, dirty/touched and data views.
//
// # Field
//
// A Field is driven by a small event surface:
//
//	Change → value, dirty (and storage write when persisting)
//	Blur → touched
//	Validate → validating → valid | invalid
//	SetValue / SetError / Reset / Focus / Attach
//
// Derived values (IsValid, IsRequiredError, ErrorMessage, NormalizedValue)
// are always computed from a single snapshot of state, so IsValid and Error
// can never disagree.
//
// # Validation
//
// Validation is delegated to a Validator:
//
//	type Validator interface {
//	    Validate(ctx context.Context, value string) (string, error)
//	}
//
// Failures are reported as *ValidationError with a Kind (KindRequired or
// KindOther) and a message. TagValidator adapts go-playground/validator tag
// expressions; any function can be used through ValidatorFunc.
//
// Validation is asynchronous. Each call to Validate supersedes earlier ones:
// a superseded outcome is discarded when it completes and the
// FieldValidationStale signal is emitted.
//
// # Status
//
// A Field reports one of four validation statuses:
//
//   - NotValidated: Initial state, and after Reset
//   - Validating: The latest validation is in flight
//   - Valid: The latest outcome cleared the error
//   - Invalid: The field holds an error
//
// # Persistence
//
// WithPersist mirrors every committed value to a Storage under the key
// "<prefix>_<name>" (or "<name>" without a prefix). The stored value is read
// back once when a view is attached. Storage failures never reach the
// field's error; they are reported through signals and metrics. Backends are
// available in pkg/:
//
//   - pkg/file: JSON document on disk, reloaded on external edits via fsnotify
//   - pkg/sqlite: SQLite table
//   - pkg/redis: Redis keys
//   - pkg/backend: selects one of the above from environment variables
//
// # Example
//
//	storage := formz.NewMemoryStorage()
//	schema := formz.NewTagValidator("required,min=5").
//	    Message("required", "this field is required")
//
//	email := formz.NewField("email",
//	    formz.WithPrefix("login"),
//	    formz.WithPersist(storage),
//	    formz.WithValidator(schema),
//	)
//	pass := formz.NewField("pass", formz.WithValidator(schema))
//
//	form := formz.MustForm(email, pass)
//
//	capitan.Hook(formz.FormSettled, func(_ context.Context, e *capitan.Event) {
//	    valid, _ := formz.KeyValidCount.From(e)
//	    log.Printf("submit settled: %d valid", valid)
//	})
//
//	email.Change(ctx, "someone@example.com")
//	form.Submit(ctx)
package formz
