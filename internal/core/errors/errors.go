// Package errors provides centralized error definitions for the engine.
//
// Naming conventions:
//   - Exported errors (Err*): for callers that branch with errors.Is
//   - All sentinel errors are variables, never inline errors.New calls
//   - Wrap with fmt.Errorf and %w to add context
package errors

import "errors"

// External classifier errors. Both recover locally to the rule-based result;
// neither is ever surfaced to an API caller.
var (
	// ErrExternalUnavailable indicates a timeout or transport failure talking
	// to the external classifier.
	ErrExternalUnavailable = errors.New("external classifier unavailable")

	// ErrMalformedResponse indicates the external classifier returned a label
	// that could not be parsed.
	ErrMalformedResponse = errors.New("malformed external classifier response")

	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and
	// external calls are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// Cache errors.
var (
	// ErrCacheMiss indicates a cache entry is absent or expired.
	ErrCacheMiss = errors.New("cache miss")
)

// Validation errors. These are the only failures propagated to callers, and
// they are rejected before any computation begins.
var (
	// ErrInvalidWindow indicates an aggregation window with end before start.
	ErrInvalidWindow = errors.New("invalid window: end before start")

	// ErrEmptyCorpus indicates a recategorization run over no items.
	ErrEmptyCorpus = errors.New("empty corpus")
)

// Storage errors.
var (
	// ErrNotFound is a generic not found error.
	ErrNotFound = errors.New("not found")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
