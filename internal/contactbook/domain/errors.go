package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a point lookup matched no row.
	ErrNotFound = errors.New("resource not found")
	// ErrConnection indicates the store could not be reached or refused the credentials.
	ErrConnection = errors.New("store connection failed")
	// ErrExecution indicates the statement was sent but failed (syntax, constraint, scan).
	ErrExecution = errors.New("statement execution failed")
)

// StoreError carries the repository operation, the failure kind
// (ErrConnection or ErrExecution) and the driver error.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the driver error to errors.Is / errors.As.
func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// ConnectionError wraps err as an ErrConnection failure of op.
func ConnectionError(op string, err error) error {
	return &StoreError{Op: op, Kind: ErrConnection, Err: err}
}

// ExecutionError wraps err as an ErrExecution failure of op.
func ExecutionError(op string, err error) error {
	return &StoreError{Op: op, Kind: ErrExecution, Err: err}
}
