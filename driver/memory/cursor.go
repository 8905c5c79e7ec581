package memory

// cursor is an index into a byte slice. All moves are clamped to the slice
// bounds, so no operation on it fails.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) BackendRead(p []byte) (int, error) {
	n := copy(p, c.data[c.off:])
	c.off += n
	return n, nil
}

func (c *cursor) BackendSeekForward(n uint64) (uint64, error) {
	n = min(n, uint64(len(c.data)-c.off))
	c.off += int(n)
	return n, nil
}

func (c *cursor) BackendSeekBackward(n uint64) (uint64, error) {
	n = min(n, uint64(c.off))
	c.off -= int(n)
	return n, nil
}

func (c *cursor) BackendRewind() error {
	c.off = 0
	return nil
}

func (c *cursor) BackendSize(string) (uint64, error) {
	return uint64(len(c.data)), nil
}
