/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every failure is returned as an explicit value; the engine never panics
  across its API.

ERROR CATEGORIES:
  1. Validation violations - recoverable, surfaced as a list for display
  2. Store errors - missing ids, stale transitions, failed re-validation
  3. Persistence errors - save failures reported without rollback

USAGE:
  Callers branch with errors.Is / errors.As:

    if errors.Is(err, leave.ErrInvalidTransition) { ... }

    var vf *leave.ValidationFailedError
    if errors.As(err, &vf) { display(vf.Violations) }
*/
package leave

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a mutation references an id absent
	// from the store. Recoverable; the caller should refresh its view.
	ErrNotFound = errors.New("request not found")

	// ErrInvalidTransition is returned when approving or rejecting a
	// request that is no longer Pending. Indicates stale client state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidationFailed is returned when the store's re-validation
	// rejects a submission the caller should have pre-validated.
	ErrValidationFailed = errors.New("validation failed")

	// ErrSaveFailed wraps persistence failures. The in-memory mutation
	// stands; durability is best-effort in this scope.
	ErrSaveFailed = errors.New("persistence save failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError identifies the missing request.
type NotFoundError struct {
	ID RequestID
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("request %s not found", e.ID) }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError reports an attempt to move a terminal request.
type InvalidTransitionError struct {
	ID     RequestID
	Status Status // current status at the time of the attempt
	Target Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("request %s is %s, cannot transition to %s", e.ID, e.Status, e.Target)
}
func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ValidationFailedError carries the full violation list so a caller can
// display every problem at once.
type ValidationFailedError struct {
	Violations []Violation
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
func (e *ValidationFailedError) Unwrap() error { return ErrValidationFailed }

// SaveError reports a persistence failure after a successful in-memory
// mutation. The returned entity is valid; only durability is in doubt.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string { return fmt.Sprintf("save failed: %v", e.Err) }
func (e *SaveError) Unwrap() error { return ErrSaveFailed }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid or stale
// client input rather than an engine failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNotFound)
}
