package native

import "github.com/gobeaver/iokit"

func init() {
	iokit.RegisterDriver("native", func(cfg *iokit.Config) (iokit.Resource, error) {
		return New(cfg.Path), nil
	})
}
