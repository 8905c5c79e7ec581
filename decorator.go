package iokit

// forwarder is the backend of a decorator. Every primitive forwards to the
// inner resource, which keeps its own state in step with the decorating File.
type forwarder struct {
	inner Resource
}

func (f *forwarder) BackendOpen(_ string, mode Mode) error { return f.inner.Open(mode) }
func (f *forwarder) BackendClose()                         { f.inner.Close() }

func (f *forwarder) BackendRead(p []byte) (int, error)  { return f.inner.Read(p) }
func (f *forwarder) BackendWrite(p []byte) (int, error) { return f.inner.Write(p) }

func (f *forwarder) BackendSeekForward(n uint64) (uint64, error)  { return f.inner.SeekForward(n) }
func (f *forwarder) BackendSeekBackward(n uint64) (uint64, error) { return f.inner.SeekBackward(n) }
func (f *forwarder) BackendRewind() error                         { return f.inner.Rewind() }

func (f *forwarder) BackendSize(string) (uint64, error)        { return f.inner.Size() }
func (f *forwarder) BackendExists(string, bool) (bool, error)  { return f.inner.Exists() }
func (f *forwarder) BackendListDir(_ string, max int) ([]string, error) {
	return f.inner.ListDir(max)
}
func (f *forwarder) BackendMakeDir(string) error { return f.inner.MakeDir() }
func (f *forwarder) BackendRelease() error       { return f.inner.Release() }
