// Package errs defines the domain error taxonomy shared by all resources.
// Services return these typed errors; handlers map them to HTTP statuses
// with errors.As. Anything else bubbling out of a service is treated as an
// unexpected fault and answered with a generic 500.
package errs

import (
	"fmt"
	"strings"
)

// ValidationError carries the complete ordered list of field violations
// found in an input record. It is always client-caused (400).
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NotFoundError signals that an id or secondary key did not resolve to a
// row. Message is the user-facing text (404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// StoreError wraps a storage-layer fault with the name of the attempted
// operation (500).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotFound builds a NotFoundError with the given message.
func NotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// Store wraps err as a StoreError for the named operation. Returns nil
// when err is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
