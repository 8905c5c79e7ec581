package iokit

// ============================================================================
// Backend primitives
// ============================================================================
// A backend supplies the primitives behind a File. File performs every state
// check and all position accounting; primitives only move bytes.
//
// Only Backend is required. The remaining interfaces are optional
// capabilities, discovered by type assertion:
//
//	if r, ok := backend.(Rewinder); ok {
//	    return r.BackendRewind()
//	}
//
// When a capability is missing, File falls back to a generic implementation
// (seek forward by reading, rewind by reopening, size by seeking) or returns
// ErrNotSupported.

// Backend is the minimal set of primitives every backend provides.
type Backend interface {
	// BackendOpen opens path in the given mode. Called only while closed.
	BackendOpen(path string, mode Mode) error

	// BackendClose releases what BackendOpen acquired. Called only while open.
	// Failures are the backend's to log; close never fails.
	BackendClose()
}

// BackendReader reads up to len(p) bytes. It must fill p unless the end of
// the stream is reached, which is not an error.
type BackendReader interface {
	BackendRead(p []byte) (int, error)
}

// BackendWriter writes p and reports how many bytes were stored.
type BackendWriter interface {
	BackendWrite(p []byte) (int, error)
}

// ForwardSeeker skips up to n bytes natively, stopping at the end.
type ForwardSeeker interface {
	BackendSeekForward(n uint64) (uint64, error)
}

// BackwardSeeker moves back n bytes. n is already clamped to the position.
type BackwardSeeker interface {
	BackendSeekBackward(n uint64) (uint64, error)
}

// Rewinder moves to the beginning without reopening.
type Rewinder interface {
	BackendRewind() error
}

// Sizer reports the size of path natively. Called only while closed.
type Sizer interface {
	BackendSize(path string) (uint64, error)
}

// ExistenceChecker answers Exists for path. open reports whether the
// resource is currently open.
type ExistenceChecker interface {
	BackendExists(path string, open bool) (bool, error)
}

// DirLister lists the directory path. max == 0 means no limit.
type DirLister interface {
	BackendListDir(path string, max int) ([]string, error)
}

// DirMaker creates the directory path.
type DirMaker interface {
	BackendMakeDir(path string) error
}

// Spawner creates a new, closed resource of the same backend.
type Spawner interface {
	BackendSpawn() (Resource, error)
}

// PathObserver is notified before the path of a closed File changes. An
// error leaves the old path in place.
type PathObserver interface {
	BackendSetPath(path string) error
}

// Releaser frees handles held for the lifetime of the resource.
type Releaser interface {
	BackendRelease() error
}
