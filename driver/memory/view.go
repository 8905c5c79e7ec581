package memory

import (
	"fmt"

	"github.com/gobeaver/iokit"
)

// View is a resource over a caller-owned byte slice of fixed length. The
// slice is never reallocated: writes past the end are clamped, the same way
// reads are.
type View struct {
	*iokit.File
	v *viewBackend
}

type viewBackend struct {
	cursor
	readOnly bool
}

var _ iokit.Resource = (*View)(nil)

// NewView creates a writable view over b. Writes go straight into b.
func NewView(b []byte) *View {
	return newView(b, false)
}

// NewReadOnlyView creates a view over b that can only be opened for reading.
func NewReadOnlyView(b []byte) *View {
	return newView(b, true)
}

// NewStringView creates a read-only view over the bytes of s.
func NewStringView(s string) *View {
	return newView([]byte(s), true)
}

func newView(b []byte, readOnly bool) *View {
	v := &viewBackend{cursor: cursor{data: b}, readOnly: readOnly}
	return &View{File: iokit.NewFile(v, ""), v: v}
}

// ReadOnly reports whether the view refuses write and create opens.
func (v *View) ReadOnly() bool {
	return v.v.readOnly
}

// Bytes returns the viewed slice.
func (v *View) Bytes() []byte {
	return v.v.data
}

func (b *viewBackend) BackendOpen(_ string, mode iokit.Mode) error {
	if b.readOnly && mode != iokit.ModeRead {
		return fmt.Errorf("%w: read-only view opened in %s mode", iokit.ErrInvalidState, mode)
	}
	b.off = 0
	return nil
}

func (b *viewBackend) BackendClose() {}

func (b *viewBackend) BackendWrite(p []byte) (int, error) {
	if b.readOnly {
		return 0, iokit.ErrNotSupported
	}
	n := copy(b.data[b.off:], p)
	b.off += n
	return n, nil
}

// BackendSpawn returns a writable view over an empty range.
func (b *viewBackend) BackendSpawn() (iokit.Resource, error) {
	return NewView(nil), nil
}
