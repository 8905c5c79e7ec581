package zip

import (
	"fmt"

	"github.com/gobeaver/iokit"
	"github.com/gobeaver/iokit/driver/native"
)

func init() {
	iokit.RegisterDriver("zip", func(cfg *iokit.Config) (iokit.Resource, error) {
		// ZIP driver reads the archive from a native file
		if cfg.ZipContainer == "" {
			return nil, fmt.Errorf("zip driver requires ZipContainer to be set to the ZIP file path")
		}

		return New(native.New(cfg.ZipContainer), cfg.Path)
	})
}
