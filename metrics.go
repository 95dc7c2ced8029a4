package formz

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key field events.
type MetricsProvider interface {
	// OnStatusChange is called when a field transitions between statuses.
	OnStatusChange(field string, from, to Status)

	// OnValidationSuccess is called when the latest validation of a field passes.
	OnValidationSuccess(field string, duration time.Duration)

	// OnValidationFailure is called when the latest validation of a field fails.
	OnValidationFailure(field string, kind Kind, duration time.Duration)

	// OnPersistFailure is called when a storage operation fails.
	// Op is "load" or "save".
	OnPersistFailure(field, op string)

	// OnChange is called when a user edit commits a value.
	OnChange(field string)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStatusChange(_ string, _, _ Status)                  {}
func (NoOpMetricsProvider) OnValidationSuccess(_ string, _ time.Duration)         {}
func (NoOpMetricsProvider) OnValidationFailure(_ string, _ Kind, _ time.Duration) {}
func (NoOpMetricsProvider) OnPersistFailure(_, _ string)                          {}
func (NoOpMetricsProvider) OnChange(_ string)                                     {}
