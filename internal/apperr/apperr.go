// Package apperr defines the sentinel error kinds shared across the
// decision engine and simulator, so callers can use errors.Is instead
// of string matching.
package apperr

import "errors"

var (
	// ErrConfigurationInvalid is returned by config validation only,
	// never at runtime.
	ErrConfigurationInvalid = errors.New("configuration invalid")

	// ErrEventOrderingViolation marks an event scheduled or applied out
	// of monotonic order. Treated as a programming bug: the tick that
	// surfaces it halts.
	ErrEventOrderingViolation = errors.New("event ordering violation")

	// ErrReferenceMissing marks an event naming an agent or queue id
	// absent from the state store.
	ErrReferenceMissing = errors.New("reference missing")

	// ErrBatchMissing is returned by EventQueue.PopBatch on an empty
	// queue; calling it without checking NextTimestamp first is a
	// programmer error.
	ErrBatchMissing = errors.New("batch missing")

	// ErrCandidateSaturation is never returned as an error. It exists
	// so call sites can document the real_capacity < 1 case by name
	// instead of a bare comment.
	ErrCandidateSaturation = errors.New("candidate saturation")

	// ErrForecastFailure marks a forecast run that failed internally.
	// The runner swallows it and keeps the previously published result.
	ErrForecastFailure = errors.New("forecast failure")
)
