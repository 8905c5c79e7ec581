package iokit

import "math"

// Mode is the mode a resource is opened in.
type Mode int

const (
	// ModeRead opens an existing resource for reading only.
	ModeRead Mode = iota
	// ModeWrite opens an existing resource for reading and writing.
	ModeWrite
	// ModeCreate creates the resource, replacing any existing content, and
	// opens it for reading and writing. An open resource reports ModeWrite.
	ModeCreate
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeCreate:
		return "create"
	default:
		return "unknown"
	}
}

// NoLimit lets Load read until the end of the stream.
const NoLimit uint64 = math.MaxUint64

// Resource is a byte-addressable unit that can be opened, read, written,
// positioned and closed. A physical file, an in-memory buffer, a decorated
// resource and a ZIP entry all satisfy it.
//
// A Resource is not safe for concurrent use. Callers serialize access.
type Resource interface {
	// Path returns the current path.
	Path() string

	// SetPath changes the path. Fails with ErrInvalidState while open.
	SetPath(path string) error

	// IsDir reports whether the path denotes a directory.
	IsDir() bool

	// IsOpen reports whether the resource is open.
	IsOpen() bool

	// Mode returns the mode the resource was opened in. Meaningful only while open.
	Mode() Mode

	// Pos returns the current position from the beginning.
	Pos() uint64

	// Suffix, Dir and NotDir split the current path.
	Suffix() string
	Dir() string
	NotDir() string

	// Open opens the resource. Without a mode it opens for reading.
	Open(mode ...Mode) error

	// Close closes the resource. Closing a closed resource does nothing.
	Close()

	// Read reads up to len(p) bytes and advances the position. It returns
	// fewer bytes only when the end is reached, and that is not an error.
	Read(p []byte) (int, error)

	// Write writes p and advances the position. Requires ModeWrite.
	Write(p []byte) (int, error)

	// SeekForward skips up to n bytes and returns how many were skipped.
	SeekForward(n uint64) (uint64, error)

	// SeekBackward moves back up to n bytes, never past the beginning.
	SeekBackward(n uint64) (uint64, error)

	// Rewind moves to the beginning.
	Rewind() error

	// ListDir lists a directory, at most max entries (0 means no limit).
	// Subdirectories carry a trailing '/'.
	ListDir(max int) ([]string, error)

	// MakeDir creates the directory the path denotes.
	MakeDir() error

	// Exists reports whether the resource exists.
	Exists() (bool, error)

	// Size returns the size in bytes. The resource must be closed.
	Size() (uint64, error)

	// Load reads up to max bytes from the beginning. The resource must be closed.
	Load(max uint64) ([]byte, error)

	// Spawn creates a new, closed resource of the same backend, optionally
	// set to path.
	Spawn(path ...string) (Resource, error)

	// Release closes the resource and frees everything it owns.
	Release() error
}
