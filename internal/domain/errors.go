package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUserNotFound is returned when a mutation targets an unknown identifier
var ErrUserNotFound = errors.New("user not found")

// ErrIDConflict is returned when no free local identifier can be assigned
var ErrIDConflict = errors.New("identifier already in use")

// ErrFetchInFlight is returned when a page is requested while another one is loading
var ErrFetchInFlight = errors.New("a page is already loading")

// TransportError is a network or non-2xx failure from the backend
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CacheError is a read or write failure of the local cache store
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// ValidationError lists the fields of a user record that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid user: " + strings.Join(e.Fields, ", ")
}

// MutationError is a create, update or delete that could not be completed.
// Err is a TransportError, CacheError, ValidationError or ErrUserNotFound.
type MutationError struct {
	Op  string
	ID  int64
	Err error
}

func (e *MutationError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("failed to %s user %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s user: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
