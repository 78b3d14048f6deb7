// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger at the given level. Unknown levels fall back to warn.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().
		Str("app", "fittrack").
		Timestamp().
		Logger()
}
