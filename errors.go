package iokit

import (
	"errors"
	"fmt"
)

// Common resource errors
var (
	// ErrInvalidState is returned when an operation is illegal for the current
	// open/closed state or mode, or when a non-directory is listed.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidArgument is returned for malformed paths and unsupported modes.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotExist is returned for missing native paths and archive entries.
	ErrNotExist = errors.New("file does not exist")
	// ErrIO is returned for native I/O failures and corrupted archives.
	ErrIO = errors.New("i/o error")
	// ErrNotSupported is returned when a backend lacks an optional primitive.
	ErrNotSupported = errors.New("operation not supported")

	ErrIsDir    = errors.New("is a directory")
	ErrNotDir   = errors.New("not a directory")
	ErrReadOnly = errors.New("resource is read-only")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a PathError for op on path.
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}

// WrapPathErr wraps err in a PathError, keeping an existing PathError intact.
func WrapPathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	return NewPathError(op, path, err)
}

// Classify files cause under kind while keeping cause in the chain,
// so both errors.Is(err, kind) and errors.Is(err, cause) hold.
func Classify(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// IsNotExist reports whether an error indicates that a file or directory
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsInvalidState reports whether err indicates an illegal open/closed state.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsNotSupported reports whether err indicates a missing backend primitive.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}

// IsIO reports whether err indicates an I/O failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsInvalidArgument reports whether err indicates a malformed argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
