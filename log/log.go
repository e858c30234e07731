// Package log holds the process-wide zap logger.
//
// The logger defaults to a no-op so library consumers pay nothing unless
// logging is explicitly enabled. The CLI calls Init at startup when verbose
// diagnostics are requested.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// L returns the current process-wide logger.
func L() *zap.Logger {
	return logger.Load()
}

// Init installs a development logger writing to stderr. When debug is true
// the level is lowered to Debug.
func Init(debug bool) error {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	logger.Store(l)

	return nil
}

// Set replaces the process-wide logger. Passing nil restores the no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}
