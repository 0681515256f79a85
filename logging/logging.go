// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	mu     sync.RWMutex
	global = New(os.Stderr, "info")
)

// New returns a logfmt logger writing to w that drops records below lvl.
// Unknown levels fall back to info.
func New(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, Option(lvl))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// Option maps a level name onto a go-kit filter option.
func Option(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none", "off":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}

// GlobalLogger returns the process logger.
func GlobalLogger() log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetGlobalLogger replaces the process logger.
func SetGlobalLogger(l log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// OrNop returns l, or a logger that discards everything when l is nil.
func OrNop(l log.Logger) log.Logger {
	if l == nil {
		return log.NewNopLogger()
	}
	return l
}
