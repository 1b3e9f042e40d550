// Package obslog builds the zerolog console-writer logger used across
// the module.
package obslog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New configures the global zerolog time format and returns a
// console-writer logger at the given level. An invalid level falls
// back to info, with a warning logged at that fallback level.
func New(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		logger.Warn().Str("level", level).Msg("invalid log level, using info")
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	return logger
}
