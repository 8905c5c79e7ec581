package memory

import "github.com/gobeaver/iokit"

func init() {
	iokit.RegisterDriver("memory", func(cfg *iokit.Config) (iokit.Resource, error) {
		b := NewBuffer()
		if err := b.SetPath(cfg.Path); err != nil {
			return nil, err
		}
		return b, nil
	})
}
