package memory

import (
	"fmt"

	"github.com/gobeaver/iokit"
)

// Buffer is a resource that owns a growable byte slice. Writing past the end
// grows the content first.
type Buffer struct {
	*iokit.File
	b *bufferBackend
}

// Config holds configuration for a Buffer
type Config struct {
	// MaxSize is the maximum content size in bytes (0 = unlimited)
	MaxSize int64
}

type bufferBackend struct {
	cursor
	maxSize int64
}

var _ iokit.Resource = (*Buffer)(nil)

// NewBuffer creates an empty buffer.
func NewBuffer(cfg ...Config) *Buffer {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}

	b := &bufferBackend{maxSize: maxSize}
	return &Buffer{File: iokit.NewFile(b, ""), b: b}
}

// Bytes returns the current content without copying. The slice is valid
// until the next write or Reset.
func (b *Buffer) Bytes() []byte {
	return b.b.data
}

// Reset returns the content and empties the buffer. The buffer must be closed.
func (b *Buffer) Reset() ([]byte, error) {
	if b.IsOpen() {
		return nil, iokit.NewPathError("reset", b.Path(), fmt.Errorf("%w: buffer is open", iokit.ErrInvalidState))
	}
	data := b.b.data
	b.b.data = nil
	b.b.off = 0
	return data, nil
}

func (b *bufferBackend) BackendOpen(_ string, mode iokit.Mode) error {
	if mode == iokit.ModeCreate {
		b.data = b.data[:0]
	}
	b.off = 0
	return nil
}

func (b *bufferBackend) BackendClose() {}

func (b *bufferBackend) BackendWrite(p []byte) (int, error) {
	want := p
	if b.maxSize > 0 && int64(b.off+len(p)) > b.maxSize {
		want = p[:max(b.maxSize-int64(b.off), 0)]
	}

	if end := b.off + len(want); end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, end, max(end, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	n := copy(b.data[b.off:], want)
	b.off += n

	if n < len(p) {
		return n, fmt.Errorf("%w: buffer limit of %d bytes reached", iokit.ErrIO, b.maxSize)
	}
	return n, nil
}

// BackendSpawn returns an empty buffer with the same size limit.
func (b *bufferBackend) BackendSpawn() (iokit.Resource, error) {
	return NewBuffer(Config{MaxSize: b.maxSize}), nil
}
