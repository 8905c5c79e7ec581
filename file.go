package iokit

import (
	"fmt"
	"math"
)

// chunkSize is the block size of the generic read-and-discard seek and of Load.
const chunkSize = 4 * 1024

// File is the resource state machine shared by every backend. It tracks the
// path, the open state, the mode and the position, checks every operation
// against them and delegates the byte moving to its Backend.
//
// Backends embed a *File in their exported type:
//
//	type Buffer struct {
//	    *iokit.File
//	    b *bufferBackend
//	}
type File struct {
	path    string
	mode    Mode
	open    bool
	pos     uint64
	backend Backend
}

// NewFile creates a closed File over backend b, set to path.
func NewFile(b Backend, path string) *File {
	return &File{path: path, backend: b}
}

var _ Resource = (*File)(nil)

// Path returns the current path.
func (f *File) Path() string {
	return f.path
}

// SetPath changes the path. Fails with ErrInvalidState while open. If the
// backend rejects the path, the old one is kept.
func (f *File) SetPath(path string) error {
	if f.open {
		return NewPathError("setpath", f.path, fmt.Errorf("%w: cannot set path while open", ErrInvalidState))
	}
	if o, ok := f.backend.(PathObserver); ok {
		if err := o.BackendSetPath(path); err != nil {
			return WrapPathErr("setpath", path, err)
		}
	}
	f.path = path
	return nil
}

func (f *File) IsDir() bool    { return IsDir(f.path) }
func (f *File) IsOpen() bool   { return f.open }
func (f *File) Mode() Mode     { return f.mode }
func (f *File) Pos() uint64    { return f.pos }
func (f *File) Suffix() string { return Suffix(f.path) }
func (f *File) Dir() string    { return Dir(f.path) }
func (f *File) NotDir() string { return NotDir(f.path) }

// Open opens the file, for reading when no mode is given.
func (f *File) Open(mode ...Mode) error {
	m := ModeRead
	if len(mode) > 0 {
		m = mode[0]
	}

	if f.open {
		return NewPathError("open", f.path, fmt.Errorf("%w: already open", ErrInvalidState))
	}
	if f.IsDir() {
		return NewPathError("open", f.path, fmt.Errorf("%w: %w", ErrInvalidState, ErrIsDir))
	}
	if m < ModeRead || m > ModeCreate {
		return NewPathError("open", f.path, fmt.Errorf("%w: unknown mode %d", ErrInvalidArgument, m))
	}

	if err := f.backend.BackendOpen(f.path, m); err != nil {
		return WrapPathErr("open", f.path, err)
	}

	if m == ModeCreate {
		m = ModeWrite
	}
	f.mode = m
	f.open = true
	f.pos = 0
	return nil
}

// Close closes the file. It does nothing if the file is not open.
func (f *File) Close() {
	if !f.open {
		return
	}
	f.backend.BackendClose()
	f.open = false
}

// Read reads up to len(p) bytes. A short count means the end was reached.
func (f *File) Read(p []byte) (int, error) {
	if !f.open {
		return 0, NewPathError("read", f.path, fmt.Errorf("%w: not open", ErrInvalidState))
	}
	r, ok := f.backend.(BackendReader)
	if !ok {
		return 0, NewPathError("read", f.path, ErrNotSupported)
	}

	n, err := r.BackendRead(p)
	f.pos += uint64(n)
	if err != nil {
		return n, WrapPathErr("read", f.path, err)
	}
	return n, nil
}

// Write writes p. The file must be open in ModeWrite.
func (f *File) Write(p []byte) (int, error) {
	if !f.open {
		return 0, NewPathError("write", f.path, fmt.Errorf("%w: not open", ErrInvalidState))
	}
	if f.mode != ModeWrite {
		return 0, NewPathError("write", f.path, fmt.Errorf("%w: not open for writing", ErrInvalidState))
	}
	w, ok := f.backend.(BackendWriter)
	if !ok {
		return 0, NewPathError("write", f.path, ErrNotSupported)
	}

	n, err := w.BackendWrite(p)
	f.pos += uint64(n)
	if err != nil {
		return n, WrapPathErr("write", f.path, err)
	}
	return n, nil
}

// SeekForward skips up to n bytes. Without a native seek it reads and
// discards the data in 4 KiB chunks.
func (f *File) SeekForward(n uint64) (uint64, error) {
	if !f.open {
		return 0, NewPathError("seekforward", f.path, fmt.Errorf("%w: not open", ErrInvalidState))
	}

	var (
		skipped uint64
		err     error
	)
	if s, ok := f.backend.(ForwardSeeker); ok {
		skipped, err = s.BackendSeekForward(n)
	} else {
		skipped, err = f.seekByReading(n)
	}
	f.pos += skipped
	if err != nil {
		return skipped, WrapPathErr("seekforward", f.path, err)
	}
	return skipped, nil
}

func (f *File) seekByReading(n uint64) (uint64, error) {
	r, ok := f.backend.(BackendReader)
	if !ok {
		return 0, ErrNotSupported
	}

	var buf [chunkSize]byte
	var skipped uint64
	for skipped != n {
		want := min(n-skipped, chunkSize)
		got, err := r.BackendRead(buf[:want])
		skipped += uint64(got)
		if err != nil {
			return skipped, err
		}
		if uint64(got) != want {
			break
		}
	}
	return skipped, nil
}

// SeekBackward moves back up to n bytes. n is clamped to the position.
// There is no generic fallback.
func (f *File) SeekBackward(n uint64) (uint64, error) {
	if !f.open {
		return 0, NewPathError("seekbackward", f.path, fmt.Errorf("%w: not open", ErrInvalidState))
	}
	s, ok := f.backend.(BackwardSeeker)
	if !ok {
		return 0, NewPathError("seekbackward", f.path, ErrNotSupported)
	}

	n = min(n, f.pos)
	moved, err := s.BackendSeekBackward(n)
	moved = min(moved, f.pos)
	f.pos -= moved
	if err != nil {
		return moved, WrapPathErr("seekbackward", f.path, err)
	}
	return moved, nil
}

// Rewind moves to the beginning. Without a native rewind the file is closed
// and reopened in the same mode.
func (f *File) Rewind() error {
	if !f.open {
		return NewPathError("rewind", f.path, fmt.Errorf("%w: not open", ErrInvalidState))
	}

	if r, ok := f.backend.(Rewinder); ok {
		if err := r.BackendRewind(); err != nil {
			return WrapPathErr("rewind", f.path, err)
		}
		f.pos = 0
		return nil
	}

	logger().WithField("path", f.path).Debug("rewinding by reopen")
	m := f.mode
	f.Close()
	return f.Open(m)
}

// ListDir lists the directory the path denotes, the current directory for
// the empty path. max == 0 means no limit.
func (f *File) ListDir(max int) ([]string, error) {
	if max < 0 {
		return nil, NewPathError("listdir", f.path, fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, max))
	}
	if f.path != "" && !f.IsDir() {
		return nil, NewPathError("listdir", f.path, fmt.Errorf("%w: %w", ErrInvalidState, ErrNotDir))
	}
	l, ok := f.backend.(DirLister)
	if !ok {
		return nil, NewPathError("listdir", f.path, ErrNotSupported)
	}

	entries, err := l.BackendListDir(f.path, max)
	if err != nil {
		return nil, WrapPathErr("listdir", f.path, err)
	}
	return entries, nil
}

// MakeDir creates the directory the path denotes.
func (f *File) MakeDir() error {
	if f.open {
		return NewPathError("makedir", f.path, fmt.Errorf("%w: open", ErrInvalidState))
	}
	if !f.IsDir() {
		return NewPathError("makedir", f.path, fmt.Errorf("%w: not a directory name", ErrInvalidArgument))
	}
	m, ok := f.backend.(DirMaker)
	if !ok {
		return NewPathError("makedir", f.path, ErrNotSupported)
	}
	return WrapPathErr("makedir", f.path, m.BackendMakeDir(f.path))
}

// Exists reports whether the file exists. Backends without their own check
// get ProbeExists.
func (f *File) Exists() (bool, error) {
	if c, ok := f.backend.(ExistenceChecker); ok {
		ok, err := c.BackendExists(f.path, f.open)
		return ok, WrapPathErr("exists", f.path, err)
	}
	return ProbeExists(f)
}

// ProbeExists is the generic existence check. An open resource exists; a
// closed one exists if it can be opened for reading. Directories cannot be
// probed this way and yield ErrNotSupported.
func ProbeExists(r Resource) (bool, error) {
	if r.IsDir() {
		return false, NewPathError("exists", r.Path(), fmt.Errorf("%w: directory existence", ErrNotSupported))
	}
	if r.IsOpen() {
		return true, nil
	}

	g, err := NewGuard(r, ModeRead)
	if err != nil {
		if IsNotExist(err) || IsIO(err) {
			return false, nil
		}
		return false, err
	}
	g.Release()
	return true, nil
}

// Size returns the size in bytes. Without a native query the file is opened,
// seeked to the end and the skipped byte count is reported.
func (f *File) Size() (uint64, error) {
	if f.open {
		return 0, NewPathError("size", f.path, fmt.Errorf("%w: open", ErrInvalidState))
	}

	if s, ok := f.backend.(Sizer); ok {
		size, err := s.BackendSize(f.path)
		if err != nil {
			return 0, WrapPathErr("size", f.path, err)
		}
		return size, nil
	}

	g, err := NewGuard(f, ModeRead)
	if err != nil {
		return 0, err
	}
	defer g.Release()

	return f.SeekForward(math.MaxUint64)
}

// Load reads up to max bytes from the beginning of the file. The file must
// be closed; it is opened for reading and closed again on every path.
func (f *File) Load(max uint64) ([]byte, error) {
	if f.open {
		return nil, NewPathError("load", f.path, fmt.Errorf("%w: already open", ErrInvalidState))
	}

	g, err := NewGuard(f, ModeRead)
	if err != nil {
		return nil, err
	}
	defer g.Release()

	out := make([]byte, 0, chunkSize)
	var chunk [chunkSize]byte
	for uint64(len(out)) != max {
		want := min(max-uint64(len(out)), chunkSize)
		n, err := f.Read(chunk[:want])
		out = append(out, chunk[:n]...)
		if err != nil {
			return nil, err
		}
		if uint64(n) != want {
			break
		}
	}
	return out[:len(out):len(out)], nil
}

// Spawn creates a new, closed resource of the same backend, set to path if
// one is given.
func (f *File) Spawn(path ...string) (Resource, error) {
	s, ok := f.backend.(Spawner)
	if !ok {
		return nil, NewPathError("spawn", f.path, ErrNotSupported)
	}

	r, err := s.BackendSpawn()
	if err != nil {
		return nil, WrapPathErr("spawn", f.path, err)
	}
	if len(path) > 0 {
		if err := r.SetPath(path[0]); err != nil {
			_ = r.Release()
			return nil, err
		}
	}
	return r, nil
}

// Release closes the file and frees backend handles.
func (f *File) Release() error {
	f.Close()
	if r, ok := f.backend.(Releaser); ok {
		return WrapPathErr("release", f.path, r.BackendRelease())
	}
	return nil
}
