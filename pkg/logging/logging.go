package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Outside production logs are
// pretty-printed on stderr; an unknown level falls back to warn.
func Setup(production bool, level string) {
	SetupWriter(os.Stderr, production, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, production bool, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if production {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
