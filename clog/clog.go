// Package clog provides the pluggable debug logger shared by the session
// and fleet packages: disabled by default, backed directly by zerolog, and
// redirectable to a caller-owned zerolog.Logger sink.
package clog

import (
	"os"

	"github.com/rs/zerolog"
)

// Clog is a leveled, toggleable logger. It wraps a zerolog.Logger rather
// than a separate provider interface, so level gating, formatting, and
// output destination are zerolog's own concerns: enabling or disabling
// output is just moving the wrapped logger between zerolog.Disabled and
// zerolog.DebugLevel.
type Clog struct {
	logger zerolog.Logger
}

// NewLogger creates a Clog that writes console-formatted output to
// stdout tagged with component, disabled until LogMode(true).
func NewLogger(component string) Clog {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().
		Timestamp().Str("component", component).Logger().
		Level(zerolog.Disabled)
	return Clog{logger: logger}
}

// LogMode enables or disables log output.
func (c *Clog) LogMode(enable bool) {
	if enable {
		c.logger = c.logger.Level(zerolog.DebugLevel)
	} else {
		c.logger = c.logger.Level(zerolog.Disabled)
	}
}

// SetOutput re-homes this Clog onto logger, preserving the current
// enabled/disabled level. Use it to route this Clog's output into a
// caller's own zerolog pipeline instead of the default stdout writer.
func (c *Clog) SetOutput(logger zerolog.Logger) {
	c.logger = logger.Level(c.logger.GetLevel())
}

// Critical logs a CRITICAL level message. zerolog has no level above
// Error, so it's tagged with a "[C]" prefix to stay distinguishable in
// the console/JSON output.
func (c Clog) Critical(format string, v ...interface{}) {
	c.logger.Error().Msgf("[C]: "+format, v...)
}

// Error logs an ERROR level message.
func (c Clog) Error(format string, v ...interface{}) {
	c.logger.Error().Msgf(format, v...)
}

// Warn logs a WARN level message.
func (c Clog) Warn(format string, v ...interface{}) {
	c.logger.Warn().Msgf(format, v...)
}

// Debug logs a DEBUG level message.
func (c Clog) Debug(format string, v ...interface{}) {
	c.logger.Debug().Msgf(format, v...)
}
