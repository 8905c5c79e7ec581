package iokit

import (
	"errors"
)

// ============================================================================
// ReadOnly Decorator
// ============================================================================

// ReadOnly wraps a Resource and refuses every operation that could modify it:
// opening in ModeWrite or ModeCreate and MakeDir. Reads, seeks, listing and
// size queries pass through.
//
// Example:
//
//	r := native.New("/etc/hosts")
//	ro := iokit.NewReadOnly(r)
//
//	data, _ := ro.Load(iokit.NoLimit)   // works
//	err := ro.Open(iokit.ModeWrite)     // err wraps ErrReadOnly
//
// ReadOnly owns the inner resource and releases it on Release.
type ReadOnly struct {
	*File
	ro *readOnlyBackend
}

// ReadOnlyOptions configures the ReadOnly behavior.
type ReadOnlyOptions struct {
	// AllowMakeDir permits directory creation even in read-only mode.
	// Default: false
	AllowMakeDir bool

	// OnWriteAttempt is called when a modifying operation is attempted.
	// If it returns nil, the operation is allowed (use carefully).
	OnWriteAttempt func(op, path string) error

	// ErrorWrapper customizes the error returned for refused operations.
	// If nil, the error is a PathError wrapping ErrReadOnly.
	ErrorWrapper func(op, path string, err error) error
}

// ReadOnlyOption is a functional option for configuring ReadOnly.
type ReadOnlyOption func(*ReadOnlyOptions)

// WithAllowMakeDir allows directory creation in read-only mode.
func WithAllowMakeDir(allow bool) ReadOnlyOption {
	return func(o *ReadOnlyOptions) {
		o.AllowMakeDir = allow
	}
}

// WithWriteAttemptHandler sets a custom handler for write attempts.
func WithWriteAttemptHandler(handler func(op, path string) error) ReadOnlyOption {
	return func(o *ReadOnlyOptions) {
		o.OnWriteAttempt = handler
	}
}

// WithErrorWrapper sets a custom error wrapper for refused operations.
func WithErrorWrapper(wrapper func(op, path string, err error) error) ReadOnlyOption {
	return func(o *ReadOnlyOptions) {
		o.ErrorWrapper = wrapper
	}
}

type readOnlyBackend struct {
	forwarder
	opts ReadOnlyOptions
}

// NewReadOnly creates a read-only wrapper around inner. The wrapper takes
// over the current path of inner.
func NewReadOnly(inner Resource, opts ...ReadOnlyOption) *ReadOnly {
	options := ReadOnlyOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return newReadOnly(inner, options)
}

func newReadOnly(inner Resource, options ReadOnlyOptions) *ReadOnly {
	b := &readOnlyBackend{forwarder: forwarder{inner: inner}, opts: options}
	return &ReadOnly{File: NewFile(b, inner.Path()), ro: b}
}

// Unwrap returns the underlying Resource.
func (r *ReadOnly) Unwrap() Resource {
	return r.ro.inner
}

// IsReadOnly returns true, indicating this is a read-only resource.
func (r *ReadOnly) IsReadOnly() bool {
	return true
}

// refuse creates the error for a modifying operation, or nil if the write
// attempt handler allows it.
func (b *readOnlyBackend) refuse(op, path string) error {
	if b.opts.OnWriteAttempt != nil {
		if err := b.opts.OnWriteAttempt(op, path); err != nil {
			if b.opts.ErrorWrapper != nil {
				return b.opts.ErrorWrapper(op, path, err)
			}
			return &PathError{Op: op, Path: path, Err: err}
		}
		return nil
	}

	if b.opts.ErrorWrapper != nil {
		return b.opts.ErrorWrapper(op, path, ErrReadOnly)
	}
	return &PathError{Op: op, Path: path, Err: ErrReadOnly}
}

func (b *readOnlyBackend) BackendOpen(path string, mode Mode) error {
	if mode != ModeRead {
		if err := b.refuse("open", path); err != nil {
			return err
		}
	}
	return b.inner.Open(mode)
}

func (b *readOnlyBackend) BackendMakeDir(path string) error {
	if !b.opts.AllowMakeDir {
		if err := b.refuse("makedir", path); err != nil {
			return err
		}
	}
	return b.inner.MakeDir()
}

func (b *readOnlyBackend) BackendSetPath(path string) error {
	return b.inner.SetPath(path)
}

func (b *readOnlyBackend) BackendSpawn() (Resource, error) {
	inner, err := b.inner.Spawn()
	if err != nil {
		return nil, err
	}
	return newReadOnly(inner, b.opts), nil
}

// IsReadOnlyError checks if an error is due to read-only restrictions.
func IsReadOnlyError(err error) bool {
	return errors.Is(err, ErrReadOnly)
}
