package domain

import "fmt"

// ValidationError reports malformed or out-of-domain input. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	EntityType string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.EntityType, e.ID)
}

// ConflictError reports an availability or concurrent-mutation conflict.
// Safe to retry after re-reading state.
type ConflictError struct {
	Resource            string
	ConflictingInterval *Interval
}

func (e *ConflictError) Error() string {
	if e.ConflictingInterval != nil {
		return fmt.Sprintf("conflict on %s: overlaps %s", e.Resource, e.ConflictingInterval)
	}
	return fmt.Sprintf("conflict on %s", e.Resource)
}

// InvalidStateError reports an illegal lifecycle transition. Not retryable
// with the same request.
type InvalidStateError struct {
	Current   BookingState
	Requested string
	Hint      string
}

func (e *InvalidStateError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("cannot %s booking in state %q: %s", e.Requested, e.Current, e.Hint)
	}
	return fmt.Sprintf("cannot %s booking in state %q", e.Requested, e.Current)
}
