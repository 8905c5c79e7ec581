package iokit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Driver to use (native, memory, zip)
	Driver string `env:"IOKIT_DRIVER,default:native"`

	// Initial path of the resource
	Path string `env:"IOKIT_PATH"`

	// Root prefix; when set the resource is wrapped in a Namespace
	Root string `env:"IOKIT_ROOT"`

	// ZIP driver configuration: native path of the archive file
	ZipContainer string `env:"IOKIT_ZIP_CONTAINER"`

	// Refuse write/create opens and MakeDir
	ReadOnly bool `env:"IOKIT_READ_ONLY,default:false"`

	// Log level for the package logger (panic, fatal, error, warn, info, debug, trace)
	LogLevel string `env:"IOKIT_LOG_LEVEL,default:info"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
