// Package logging builds the process wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the root logger at the given level. With a file it appends
// JSON lines there; otherwise it writes a console stream to stderr. The
// terminal front end owns the terminal once it starts, so interactive runs
// want the file. The returned closer releases the file, if any.
func New(level, file string) (zerolog.Logger, io.Closer, error) {
	if err := SetLevel(level); err != nil {
		return zerolog.Nop(), nil, err
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	} else {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(out).With().Timestamp().Str("app", "neophyte").Logger()
	log.Logger = logger
	return logger, closer, nil
}

// SetLevel adjusts the global level at runtime. An empty name means info.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
