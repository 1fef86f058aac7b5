package eventdeck

import "errors"

// ErrNotFound reports an id that is absent from its collection.
var ErrNotFound = errors.New("not found")

// ErrInvalidOrder reports a reorder list whose id set does not exactly
// match the stored schedule.
var ErrInvalidOrder = errors.New("invalid order")

// ValidationError reports input rejected by a mutating operation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
