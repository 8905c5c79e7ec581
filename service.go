package iokit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gobeaver/beaver-kit/config"
)

// Global instance
var (
	defaultResource Resource
	defaultOnce     sync.Once
	defaultErr      error
)

// Builder provides a way to create Resource instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Resource instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Resource instance using the builder's prefix
func (b *Builder) New() (Resource, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global resource instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultResource, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a new resource with the given config. The driver resource is
// wrapped in a Namespace when Root is set and in a ReadOnly decorator when
// ReadOnly is set.
func New(cfg *Config) (Resource, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := setLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r, err := CreateDriver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	if cfg.Root != "" {
		ns, err := NewNamespace(r, cfg.Root)
		if err != nil {
			_ = r.Release()
			return nil, fmt.Errorf("failed to create namespace: %w", err)
		}
		r = ns
	}

	if cfg.ReadOnly {
		r = NewReadOnly(r)
	}

	return r, nil
}

// validateConfig checks configuration validity. The driver must be
// registered.
func validateConfig(cfg *Config) error {
	if cfg.Driver == "" {
		return errors.New("driver is required")
	}

	if !driverRegistered(cfg.Driver) {
		return fmt.Errorf("unknown driver: %s", cfg.Driver)
	}

	if cfg.Driver == "zip" && cfg.ZipContainer == "" {
		return errors.New("zip container is required for zip driver")
	}

	return nil
}

// Default returns the global instance, initializing if needed with error handling
func Default() (Resource, error) {
	if defaultResource == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultResource, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv() (Resource, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Reset releases and clears the global instance (for testing)
func Reset() {
	if defaultResource != nil {
		_ = defaultResource.Release()
	}
	defaultResource = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
