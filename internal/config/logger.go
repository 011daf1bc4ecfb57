package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds a logger writing to w at the settings' level.
// An unparsable level falls back to info.
func (s Settings) NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
