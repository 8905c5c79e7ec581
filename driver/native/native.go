// Package native provides an iokit resource over a filesystem entry. The
// filesystem is an afero.Fs: the OS filesystem by default, or any other
// implementation through NewWithFs.
package native

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/gobeaver/iokit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// File is a resource over one path of an afero.Fs.
type File struct {
	*iokit.File
	b *backend
}

type backend struct {
	fs  afero.Fs
	f   afero.File
	log *logrus.Entry
}

var _ iokit.Resource = (*File)(nil)

// New creates a closed resource over the OS filesystem.
func New(path ...string) *File {
	return NewWithFs(afero.NewOsFs(), path...)
}

// NewWithFs creates a closed resource over fsys.
func NewWithFs(fsys afero.Fs, path ...string) *File {
	p := ""
	if len(path) > 0 {
		p = path[0]
	}
	b := &backend{fs: fsys, log: iokit.DriverLogger("native")}
	return &File{File: iokit.NewFile(b, p), b: b}
}

// Fs returns the filesystem the resource lives on.
func (f *File) Fs() afero.Fs {
	return f.b.fs
}

// HomeDir returns the home directory of the current user with a trailing '/'.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", iokit.Classify(iokit.ErrIO, err)
	}
	if !strings.HasSuffix(home, "/") {
		home += "/"
	}
	return home, nil
}

func openFlag(mode iokit.Mode) int {
	switch mode {
	case iokit.ModeWrite:
		return os.O_RDWR
	case iokit.ModeCreate:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return os.O_RDONLY
	}
}

// classify maps an afero/os error onto the iokit taxonomy.
func classify(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return iokit.Classify(iokit.ErrNotExist, err)
	}
	return iokit.Classify(iokit.ErrIO, err)
}

func (b *backend) BackendOpen(path string, mode iokit.Mode) error {
	f, err := b.fs.OpenFile(path, openFlag(mode), 0644)
	if err != nil {
		return classify(err)
	}

	if fi, err := f.Stat(); err == nil && fi.IsDir() {
		_ = f.Close()
		return iokit.Classify(iokit.ErrIO, iokit.ErrIsDir)
	}

	b.f = f
	return nil
}

func (b *backend) BackendClose() {
	if err := b.f.Close(); err != nil {
		b.log.WithError(err).WithField("path", b.f.Name()).Debug("close failed")
	}
	b.f = nil
}

func (b *backend) BackendRead(p []byte) (int, error) {
	n, err := io.ReadFull(b.f, p)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, nil
	default:
		return n, iokit.Classify(iokit.ErrIO, err)
	}
}

func (b *backend) BackendWrite(p []byte) (int, error) {
	n, err := b.f.Write(p)
	if err != nil {
		return n, iokit.Classify(iokit.ErrIO, err)
	}
	return n, nil
}

// BackendSeekForward seeks natively, stopping at the size reported by stat.
func (b *backend) BackendSeekForward(n uint64) (uint64, error) {
	cur, err := b.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, iokit.Classify(iokit.ErrIO, err)
	}
	fi, err := b.f.Stat()
	if err != nil {
		return 0, iokit.Classify(iokit.ErrIO, err)
	}

	n = min(n, uint64(max(fi.Size()-cur, 0)))
	if n == 0 {
		return 0, nil
	}
	if _, err := b.f.Seek(int64(n), io.SeekCurrent); err != nil {
		return 0, iokit.Classify(iokit.ErrIO, err)
	}
	return n, nil
}

// BackendSeekBackward issues relative seeks of at most math.MaxInt64 bytes
// each until n bytes are covered.
func (b *backend) BackendSeekBackward(n uint64) (uint64, error) {
	var moved uint64
	for moved != n {
		step := min(n-moved, math.MaxInt64)
		if step != n {
			b.log.WithField("step", step).Debug("splitting backward seek")
		}
		if _, err := b.f.Seek(-int64(step), io.SeekCurrent); err != nil {
			return moved, iokit.Classify(iokit.ErrIO, err)
		}
		moved += step
	}
	return moved, nil
}

func (b *backend) BackendRewind() error {
	if _, err := b.f.Seek(0, io.SeekStart); err != nil {
		return iokit.Classify(iokit.ErrIO, err)
	}
	return nil
}

func (b *backend) BackendSize(path string) (uint64, error) {
	fi, err := b.fs.Stat(path)
	if err != nil {
		return 0, classify(err)
	}
	if fi.IsDir() {
		return 0, iokit.Classify(iokit.ErrIO, iokit.ErrIsDir)
	}
	return uint64(fi.Size()), nil
}

// BackendExists stats path. A directory path whose stat fails for a reason
// other than non-existence is probed by opening it.
func (b *backend) BackendExists(path string, open bool) (bool, error) {
	if open {
		return true, nil
	}

	fi, err := b.fs.Stat(path)
	switch {
	case err == nil:
		return fi.IsDir() == iokit.IsDir(path), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case iokit.IsDir(path):
		d, err := b.fs.Open(path)
		if err != nil {
			return false, nil
		}
		_ = d.Close()
		return true, nil
	default:
		return false, iokit.Classify(iokit.ErrIO, err)
	}
}

// BackendListDir lists path sorted by name. Directories, including symlinks
// to directories, get a trailing '/'.
func (b *backend) BackendListDir(path string, limit int) ([]string, error) {
	dir := path
	if dir == "" {
		dir = "."
	}

	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, classify(err)
	}

	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}

	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		name := fi.Name()
		if fi.Mode()&os.ModeSymlink != 0 {
			if target, err := b.fs.Stat(path + name); err == nil {
				fi = target
			}
		}
		if fi.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}

func (b *backend) BackendMakeDir(path string) error {
	if err := b.fs.Mkdir(strings.TrimSuffix(path, "/"), 0755); err != nil {
		return classify(err)
	}
	return nil
}

func (b *backend) BackendSpawn() (iokit.Resource, error) {
	return NewWithFs(b.fs), nil
}

// String describes the resource for logs.
func (f *File) String() string {
	return fmt.Sprintf("native:%s", f.Path())
}
