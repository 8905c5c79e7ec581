// Package zip provides an iokit resource for one entry inside a ZIP archive.
// The archive is read from a container resource, which the Archive owns; the
// container may be any iokit.Resource, e.g. a native file or a memory view.
// Writing archives is not supported.
package zip

import (
	"errors"
	"fmt"
	"io"

	"github.com/gobeaver/iokit"
	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

// Archive is a resource over an entry of a ZIP archive. Its path is the
// entry name as stored in the central directory; paths ending in '/' are
// directories and can be listed.
type Archive struct {
	*iokit.File
	a *archiveBackend
}

type archiveBackend struct {
	owner *iokit.File
	cio   *containerIO
	zr    *zip.Reader
	index map[string]*zip.File

	entry     io.ReadCloser
	crcFailed bool

	log *logrus.Entry
}

var _ iokit.Resource = (*Archive)(nil)

// New parses the central directory of container and returns a closed
// resource set to path, if given. The Archive owns container: it is opened
// on demand by the I/O callbacks, reopened if it was closed in between, and
// released on Release. On failure the container is closed again and the
// error wraps iokit.ErrIO.
func New(container iokit.Resource, path ...string) (*Archive, error) {
	if container == nil {
		return nil, iokit.NewPathError("zip", "", fmt.Errorf("%w: nil container", iokit.ErrInvalidArgument))
	}
	p := ""
	if len(path) > 0 {
		p = path[0]
	}

	b := &archiveBackend{
		cio: newContainerIO(container),
		log: iokit.DriverLogger("zip").WithField("container", container.Path()),
	}
	if err := b.load(); err != nil {
		return nil, iokit.NewPathError("zip", container.Path(), err)
	}

	f := iokit.NewFile(b, p)
	b.owner = f
	return &Archive{File: f, a: b}, nil
}

func (b *archiveBackend) load() error {
	if err := b.cio.ensureOpen(b.cio.opaque); err != nil {
		return iokit.Classify(iokit.ErrIO, err)
	}

	size, err := b.cio.size()
	if err == nil {
		b.zr, err = zip.NewReader(b.cio, size)
	}
	if err != nil {
		if cerr := b.cio.error(b.cio.opaque); cerr != nil && !errors.Is(err, cerr) {
			err = errors.Join(err, cerr)
		}
		b.cio.close(b.cio.opaque)
		return iokit.Classify(iokit.ErrIO, err)
	}

	b.index = make(map[string]*zip.File, len(b.zr.File))
	for _, f := range b.zr.File {
		if _, dup := b.index[f.Name]; !dup {
			b.index[f.Name] = f
		}
	}
	return nil
}

// Entries returns the names in the central directory, in stored order.
func (a *Archive) Entries() []string {
	if a.a.zr == nil {
		return nil
	}
	names := make([]string, 0, len(a.a.zr.File))
	for _, f := range a.a.zr.File {
		names = append(names, f.Name)
	}
	return names
}

func (b *archiveBackend) BackendOpen(path string, mode iokit.Mode) error {
	if mode != iokit.ModeRead {
		return fmt.Errorf("%w: %s mode inside a ZIP archive", iokit.ErrInvalidArgument, mode)
	}
	if b.zr == nil {
		return fmt.Errorf("%w: archive released", iokit.ErrInvalidState)
	}

	f, ok := b.index[path]
	if !ok {
		return iokit.ErrNotExist
	}

	rc, err := f.Open()
	if err != nil {
		return iokit.Classify(iokit.ErrIO, err)
	}
	b.entry = rc
	b.crcFailed = false
	return nil
}

func (b *archiveBackend) BackendClose() {
	if err := b.entry.Close(); err != nil {
		b.log.WithError(err).Debug("closing entry failed")
	}
	if b.crcFailed {
		b.log.WithField("entry", b.owner.Path()).Warn("CRC check failed")
	}
	b.entry = nil
}

// BackendRead fills p with decompressed bytes. A CRC mismatch at the end of
// the entry ends the stream; it is reported on close.
func (b *archiveBackend) BackendRead(p []byte) (int, error) {
	var n int
	for n < len(p) {
		m, err := b.entry.Read(p[n:])
		n += m
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return n, nil
		case errors.Is(err, zip.ErrChecksum):
			b.crcFailed = true
			return n, nil
		default:
			return n, iokit.Classify(iokit.ErrIO, err)
		}
	}
	return n, nil
}

func (b *archiveBackend) BackendExists(path string, open bool) (bool, error) {
	if iokit.IsDir(path) {
		return iokit.ProbeExists(b.owner)
	}
	if path == "" {
		return false, nil
	}
	if open {
		return true, nil
	}
	_, ok := b.index[path]
	return ok, nil
}

// BackendSpawn opens a new archive over a fresh spawn of the container.
func (b *archiveBackend) BackendSpawn() (iokit.Resource, error) {
	c := b.cio.opaque
	spawned, err := c.Spawn(c.Path())
	if err != nil {
		return nil, err
	}
	a, err := New(spawned)
	if err != nil {
		_ = spawned.Release()
		return nil, err
	}
	return a, nil
}

// BackendRelease closes the container and releases it.
func (b *archiveBackend) BackendRelease() error {
	if b.zr == nil {
		return nil
	}
	b.zr = nil
	b.index = nil
	b.cio.close(b.cio.opaque)
	return b.cio.opaque.Release()
}
