package iokit

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logMu sync.RWMutex
	log   = logrus.New()
)

// Logger returns the package logger.
func Logger() *logrus.Logger {
	return logger()
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	logMu.Lock()
	log = l
	logMu.Unlock()
}

// DriverLogger returns an entry tagged with the driver name.
func DriverLogger(driver string) *logrus.Entry {
	return logger().WithField("driver", driver)
}

func logger() *logrus.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return log
}

// setLogLevel parses level and applies it to the package logger. An empty
// level leaves the logger unchanged.
func setLogLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger().SetLevel(lvl)
	return nil
}
