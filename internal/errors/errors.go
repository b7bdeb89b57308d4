// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors. Business-level "nothing happened" states
// (no trades yet, empty registry) are not errors; these cover genuine
// failures at the boundaries.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrAlertNotFound   = errors.New("alert not found")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrDatabaseError   = errors.New("database error")
	ErrImportFailed    = errors.New("import failed")
)

// StoreError represents an error from the persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ImportError represents an error importing external trade data.
type ImportError struct {
	File string
	Line int
	Err  error
}

func (e *ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("import error %s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("import error %s: %v", e.File, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
