package formz

import (
	"time"

	"github.com/zoobzio/clockz"
)

// config holds construction options for a Field.
type config struct {
	prefix            string
	storage           Storage
	validator         Validator
	transform         func(string) string
	normalize         func(string) string
	codec             Codec
	clock             clockz.Clock
	metrics           MetricsProvider
	validationTimeout time.Duration
	historySize       int
	syncMode          bool
}

// Option configures a Field. Options are applied once at construction and
// cannot be changed afterwards.
type Option func(*config)

// WithPrefix sets the form prefix used to build the storage key.
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithPersist enables persistence of committed values to storage.
// A nil storage leaves persistence disabled.
func WithPersist(storage Storage) Option {
	return func(c *config) {
		c.storage = storage
	}
}

// WithValidator sets the validation adapter. Without one, every value is valid.
func WithValidator(v Validator) Option {
	return func(c *config) {
		c.validator = v
	}
}

// WithTransform sets the function applied to every incoming value before it
// is committed.
func WithTransform(fn func(string) string) Option {
	return func(c *config) {
		c.transform = fn
	}
}

// WithNormalize sets the function used to derive the normalized value
// reported in form data and pushed to the view by SetValue.
func WithNormalize(fn func(string) string) Option {
	return func(c *config) {
		c.normalize = fn
	}
}

// WithCodec sets the codec used to serialize persisted values.
// Default: JSONCodec.
func WithCodec(codec Codec) Option {
	return func(c *config) {
		c.codec = codec
	}
}

// WithClock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic timeout testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithMetrics sets a metrics provider for observability integration.
func WithMetrics(provider MetricsProvider) Option {
	return func(c *config) {
		c.metrics = provider
	}
}

// WithValidationTimeout bounds how long a single validation may run. When
// exceeded the field fails with a KindOther "validation timed out" error.
// Default: no timeout, a validator that never returns leaves the field
// validating indefinitely.
func WithValidationTimeout(d time.Duration) Option {
	return func(c *config) {
		c.validationTimeout = d
	}
}

// WithErrorHistory sets the number of recent validation failures to retain.
// The history is cleared by a successful validation or a reset.
func WithErrorHistory(n int) Option {
	return func(c *config) {
		c.historySize = n
	}
}

// WithSyncMode enables synchronous processing for testing.
// In sync mode, validation and persisted loads complete before the
// triggering call returns, making tests deterministic.
func WithSyncMode() Option {
	return func(c *config) {
		c.syncMode = true
	}
}

func identity(v string) string { return v }
