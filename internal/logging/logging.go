// Package logging builds the zerolog logger shared by dsmap commands.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger that writes JSON lines to w.
// If w is nil, logs are written to stderr.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	if w == nil {
		w = os.Stderr
	}

	l := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, nil
}
