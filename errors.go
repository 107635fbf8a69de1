package subwise

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the category of commands rejected because of their arguments.
	ErrValidation = errors.New("validation error")
	// ErrImportFormat is the category of snapshot documents rejected by import.
	ErrImportFormat = errors.New("invalid import format")
)

// ValidationError rejects a command; the ledger state is unchanged.
type ValidationError struct {
	Op     string // command name, e.g. "add budget"
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Reason) }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(op, format string, args ...any) error {
	return &ValidationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ImportFormatError rejects a snapshot document before any mutation.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import format: %s: %v", e.Reason, e.Err)
	}
	return "invalid import format: " + e.Reason
}

func (e *ImportFormatError) Is(target error) bool { return target == ErrImportFormat }
func (e *ImportFormatError) Unwrap() error        { return e.Err }

// PersistError reports a failed snapshot write. It is a warning: the in-memory state it failed to
// save remains the source of truth.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string { return "persist snapshot: " + e.Err.Error() }
func (e *PersistError) Unwrap() error { return e.Err }
