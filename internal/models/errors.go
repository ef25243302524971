package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrLookup     = errors.New("contact lookup failed")
	ErrSend       = errors.New("message send failed")
)

// ValidationError reports bad user input on a single field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports an update or lookup of an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// LookupError reports a failed contact resolution. It matches both ErrLookup
// and ErrNotFound: callers treat an unresolvable contact as absent.
type LookupError struct {
	Ref string
	Err error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", ErrLookup, e.Ref)
	}
	return fmt.Sprintf("%s: %q: %v", ErrLookup, e.Ref, e.Err)
}

func (e *LookupError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLookup, ErrNotFound}
	}
	return []error{ErrLookup, ErrNotFound, e.Err}
}

// SendError reports a message that could not be delivered to one recipient.
type SendError struct {
	PhoneNumber string
	Err         error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s to %s: %v", ErrSend, e.PhoneNumber, e.Err)
}

func (e *SendError) Unwrap() []error { return []error{ErrSend, e.Err} }
