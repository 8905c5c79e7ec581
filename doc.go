// Package iokit provides a uniform synchronous I/O abstraction over named
// resources: files on a filesystem, byte ranges in memory and entries inside
// ZIP archives. Every resource is an explicit state machine with a path, an
// open/closed state, an open mode and a byte position.
//
// # Resources and Backends
//
// A backend embeds [*File], which performs all state checks and position
// accounting, and supplies the byte-moving primitives. Only [Backend] is
// required; the other primitives are optional and discovered by type
// assertion. Missing ones get a generic default:
//
//   - SeekForward reads and discards in 4 KiB chunks
//   - Rewind closes and reopens in the same mode
//   - Size opens the resource and seeks to the end
//   - Exists tries to open the resource for reading
//
// Operations without a default fail with [ErrNotSupported].
//
// The bundled backends:
//
//   - Native files over an afero.Fs (github.com/gobeaver/iokit/driver/native)
//   - Fixed views and growable buffers (github.com/gobeaver/iokit/driver/memory)
//   - ZIP archive entries (github.com/gobeaver/iokit/driver/zip)
//
// # Basic Usage
//
//	f := native.New("/etc/hosts")
//
//	// Load opens, reads and closes
//	data, err := f.Load(iokit.NoLimit)
//
//	// Explicit open/close
//	if err := f.Open(iokit.ModeRead); err != nil {
//	    return err
//	}
//	defer f.Close()
//	buf := make([]byte, 64)
//	n, err := f.Read(buf)
//
//	// Scoped open
//	err = iokit.WithOpen(f, iokit.ModeRead, func(r iokit.Resource) error {
//	    _, err := r.SeekForward(128)
//	    return err
//	})
//
// # Paths
//
// Paths are opaque strings; a trailing '/' marks a directory. Directories
// cannot be opened, only listed ([File.ListDir]) and created
// ([File.MakeDir]). [Suffix], [Dir] and [NotDir] split a path.
//
// # Archives
//
// A ZIP archive is read through another resource, its container:
//
//	a, err := zip.New(native.New("bundle.zip"), "docs/readme.txt")
//	data, err := a.Load(iokit.NoLimit)
//
//	_ = a.SetPath("docs/")
//	names, err := a.ListDir(0)
//
// # Decorators
//
//	// All paths resolved under a root
//	ns, err := iokit.NewNamespace(native.New(), "/srv/data/")
//
//	// Refuse write and create opens
//	ro := iokit.NewReadOnly(ns)
//
// # Error Handling
//
// Errors wrap one of the sentinel kinds ([ErrInvalidState],
// [ErrInvalidArgument], [ErrNotExist], [ErrIO], [ErrNotSupported]) inside a
// [*PathError]:
//
//	if err := f.Open(); iokit.IsNotExist(err) {
//	    // missing
//	}
//
// # Configuration
//
// A resource can be built from environment variables with the BEAVER_IOKIT_
// prefix, or from a [Config]:
//
//	r, err := iokit.New(&iokit.Config{Driver: "zip", ZipContainer: "bundle.zip", Path: "./"})
//
// Drivers register themselves on import; import the driver packages you use.
package iokit
