package domain

import (
	"fmt"
	"strings"
)

// ValidationError is returned for malformed or missing input.
type ValidationError struct {
	Message string
	Details []string
}

func NewValidationError(msg string, details ...string) *ValidationError {
	return &ValidationError{Message: msg, Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StateError means the entity exists but is not in a state that allows the
// requested operation.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// TransitionError is the StateError produced by the transition functions.
type TransitionError struct {
	Entity string
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s in status %s", e.Action, e.Entity, e.From)
}

var (
	ErrAlreadySettled    = &StateError{Message: "order already settled"}
	ErrTableHasOpenOrder = &StateError{Message: "table already has an open order"}
	ErrTableDoubleBooked = &StateError{Message: "table already reserved at that time"}
	ErrStatusChanged     = &StateError{Message: "status changed concurrently, reload and retry"}
	ErrSettleCancelled   = &StateError{Message: "cannot settle a cancelled order"}
	ErrCancelSettled     = &StateError{Message: "cannot cancel an order that has been paid"}
)
