package zip

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gobeaver/iokit"
)

// containerIO routes all container-level I/O of the ZIP reader through the
// container resource. One instance belongs to one Archive.
type containerIO struct {
	opaque iokit.Resource

	open  func(c iokit.Resource) error
	close func(c iokit.Resource)
	read  func(c iokit.Resource, p []byte) (int, error)
	write func(c iokit.Resource, p []byte) (int, error)
	seek  func(c iokit.Resource, offset uint64, whence int) error
	tell  func(c iokit.Resource) uint64
	error func(c iokit.Resource) error

	lastErr error
}

func newContainerIO(container iokit.Resource) *containerIO {
	cio := &containerIO{opaque: container}

	cio.open = func(c iokit.Resource) error {
		return cio.record(c.Open(iokit.ModeRead))
	}
	cio.close = func(c iokit.Resource) {
		c.Close()
	}
	cio.read = func(c iokit.Resource, p []byte) (int, error) {
		if err := cio.ensureOpen(c); err != nil {
			return 0, err
		}
		n, err := c.Read(p)
		return n, cio.record(err)
	}
	cio.write = func(c iokit.Resource, p []byte) (int, error) {
		return 0, cio.record(fmt.Errorf("%w: writing ZIP archives", iokit.ErrNotSupported))
	}
	cio.seek = func(c iokit.Resource, offset uint64, whence int) error {
		if err := cio.ensureOpen(c); err != nil {
			return err
		}
		return cio.record(seekContainer(c, offset, whence))
	}
	cio.tell = func(c iokit.Resource) uint64 {
		if cio.ensureOpen(c) != nil {
			return 0
		}
		return c.Pos()
	}
	cio.error = func(iokit.Resource) error {
		return cio.lastErr
	}

	return cio
}

// ensureOpen reopens the container for reading if something closed it
// between callbacks.
func (cio *containerIO) ensureOpen(c iokit.Resource) error {
	if c.IsOpen() {
		return nil
	}
	return cio.open(c)
}

func (cio *containerIO) record(err error) error {
	if err != nil {
		cio.lastErr = err
	}
	return err
}

// seekContainer moves the container to offset relative to whence. Offsets
// are non-negative: io.SeekEnd always lands on the end.
func seekContainer(c iokit.Resource, offset uint64, whence int) error {
	switch whence {
	case io.SeekCurrent:
		_, err := c.SeekForward(offset)
		return err
	case io.SeekEnd:
		_, err := c.SeekForward(math.MaxUint64)
		return err
	case io.SeekStart:
		cur := c.Pos()
		if offset >= cur {
			_, err := c.SeekForward(offset - cur)
			return err
		}
		_, err := c.SeekBackward(cur - offset)
		if err == nil || !errors.Is(err, iokit.ErrNotSupported) {
			return err
		}
		if err := c.Rewind(); err != nil {
			return err
		}
		_, err = c.SeekForward(offset)
		return err
	default:
		return fmt.Errorf("%w: seek origin %d", iokit.ErrInvalidArgument, whence)
	}
}

// size seeks the container to its end and reports the position.
func (cio *containerIO) size() (int64, error) {
	if err := cio.seek(cio.opaque, 0, io.SeekEnd); err != nil {
		return 0, err
	}
	end := cio.tell(cio.opaque)
	if end > math.MaxInt64 {
		return 0, fmt.Errorf("%w: container too large", iokit.ErrIO)
	}
	return int64(end), nil
}

// ReadAt implements io.ReaderAt on top of the seek and read callbacks.
func (cio *containerIO) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", iokit.ErrInvalidArgument, off)
	}
	if err := cio.seek(cio.opaque, uint64(off), io.SeekStart); err != nil {
		return 0, err
	}
	if cio.tell(cio.opaque) != uint64(off) {
		return 0, io.EOF
	}

	n, err := cio.read(cio.opaque, p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
