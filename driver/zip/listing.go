package zip

import (
	"fmt"
	"strings"

	"github.com/gobeaver/iokit"
)

// BackendListDir reports the immediate children of the directory path. The
// central directory is flat, so directories are reconstructed from entry
// names: a name below path contributes its first segment, with a trailing
// '/' if more follows. Each child is reported once, in first-seen order.
// Implicit directories, which have no entry of their own, are reported too.
func (b *archiveBackend) BackendListDir(path string, limit int) ([]string, error) {
	if b.entry != nil {
		return nil, fmt.Errorf("%w: an entry is open", iokit.ErrInvalidState)
	}
	if b.zr == nil {
		return nil, fmt.Errorf("%w: archive released", iokit.ErrInvalidState)
	}

	dir := strings.TrimPrefix(path, "./")

	var children []string
	seen := make(map[string]bool)
	for _, f := range b.zr.File {
		name := f.Name
		if len(name) <= len(dir) || !strings.HasPrefix(name, dir) {
			continue
		}

		child := name[len(dir):]
		if slash := strings.IndexByte(child, '/'); slash >= 0 {
			child = child[:slash+1]
		}
		if seen[child] {
			continue
		}
		seen[child] = true
		children = append(children, child)

		if limit > 0 && len(children) == limit {
			break
		}
	}
	return children, nil
}
