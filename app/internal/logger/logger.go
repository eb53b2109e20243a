// Package logger installs the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Configure replaces the default charmbracelet logger. An unknown level
// falls back to info; a nil writer means stderr.
func Configure(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	log.SetDefault(l)
	return l
}

// ToFile routes logs to path, or discards them when path is empty.
// Interactive screens use it so log lines do not tear the display.
func ToFile(level, path string) (io.Closer, error) {
	if path == "" {
		Configure(level, io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	Configure(level, f)
	return f, nil
}
