package roster

import (
	"errors"
	"fmt"
)

// ErrNothingToUndo is returned when the change log is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNoopMove is returned for a move whose source equals its destination.
var ErrNoopMove = errors.New("move source equals destination")

// FetchError wraps a transport-level failure reaching the backend.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CapExceededError is a local precondition failure: the edit would push
// the resident past their monthly assignment cap. It never reaches the
// backend.
type CapExceededError struct {
	Resident string
	Limit    int
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("%s: assignment cap of %d reached", e.Resident, e.Limit)
}

// NGDateError is a local move rejection: the destination date is excluded
// for the resident.
type NGDateError struct {
	Resident string
	Date     string
}

func (e *NGDateError) Error() string {
	return fmt.Sprintf("%s must not be assigned on %s", e.Resident, e.Date)
}

// SlotFullError is a local move rejection: the destination slot has no
// remaining capacity and the resident does not already occupy it.
type SlotFullError struct {
	Hospital string
	Date     string
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("no remaining slots at %s on %s", e.Hospital, e.Date)
}

// RejectedError is an authoritative backend rejection of a mutation. The
// backend's refusal always wins over local checks.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected by backend: %s", e.Op, e.Message)
}
