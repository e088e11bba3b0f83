package booking

import (
	"errors"
	"fmt"
)

type Reason string

const (
	ReasonClosedDay       Reason = "closed_day"
	ReasonSlotUnavailable Reason = "slot_unavailable"
	ReasonInvalidContact  Reason = "invalid_contact_field"
	ReasonUnknownService  Reason = "unknown_service"
)

// RejectionError reports why a booking request was refused. Fields
// carries per-field messages for contact validation failures so the
// caller can render targeted feedback.
type RejectionError struct {
	Reason Reason
	Fields map[string]string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("booking rejected: %s", e.Reason)
}

func reject(reason Reason) *RejectionError {
	return &RejectionError{Reason: reason}
}

// AsRejection unwraps err into a RejectionError when it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// StorageError surfaces a persistence failure out of the ledger instead
// of swallowing it. The booking itself is not retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
