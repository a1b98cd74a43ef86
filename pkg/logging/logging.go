package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the console logger the scanner reports through. Verbose mode
// surfaces every probe attempt at debug level; otherwise only findings and
// run-level messages show.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
