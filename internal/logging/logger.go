// Package logging configures the diagnostic stream.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger based on verbosity.
// Diagnostics always go to stderr so stdout stays free for the resolved path.
func SetupLogger(verbose bool) {
	SetupLoggerWithWriter(os.Stderr, verbose)
}

// SetupLoggerWithWriter configures the global logger to write to w.
func SetupLoggerWithWriter(w io.Writer, verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}

	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()

	log.Debug().Bool("verbose", verbose).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
