package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger builds a timestamped logger at the configured level writing to w.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(c.Level()).With().Timestamp().Logger()
}

// OpenLogFile opens the configured log file for appending. The TUI owns the
// terminal, so its logs go here instead of stderr.
func (c *Config) OpenLogFile() (*os.File, error) {
	return os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
