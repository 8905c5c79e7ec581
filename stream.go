package iokit

import (
	"io"
)

// Reader adapts an open Resource to io.Reader. The resource signals the end
// with a short read; Reader turns that into io.EOF.
type Reader struct {
	r   Resource
	eof bool
}

// NewReader returns an io.Reader over the open resource r.
func NewReader(r Resource) *Reader {
	return &Reader{r: r}
}

func (s *Reader) Read(p []byte) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := s.r.Read(p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
	}
	return n, nil
}

// Writer adapts a Resource open for writing to io.Writer.
type Writer struct {
	r Resource
}

// NewWriter returns an io.Writer over r, which must be open in ModeWrite.
func NewWriter(r Resource) *Writer {
	return &Writer{r: r}
}

func (s *Writer) Write(p []byte) (int, error) {
	n, err := s.r.Write(p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Copy copies the closed resource src into the closed resource dst, which is
// created or truncated. Both are closed again on return.
func Copy(dst, src Resource) (int64, error) {
	var written int64
	err := WithOpen(src, ModeRead, func(src Resource) error {
		return WithOpen(dst, ModeCreate, func(dst Resource) error {
			var err error
			written, err = io.Copy(NewWriter(dst), NewReader(src))
			return err
		})
	})
	return written, err
}
