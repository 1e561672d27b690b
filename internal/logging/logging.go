/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package logging adapts charmbracelet/log to the logger and UI interfaces
// used by the resolver and the CocoaPods activator.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger writes warnings, debug output and user messages to a single
// charmbracelet logger.
type Logger struct {
	l *log.Logger
}

// New creates a Logger writing to w. Debug messages are shown only when
// verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &Logger{l: log.NewWithOptions(w, log.Options{
		Prefix: "nativeconf",
		Level:  level,
	})}
}

// Warning logs a formatted warning.
func (l *Logger) Warning(format string, args ...any) {
	l.l.Warnf(format, args...)
}

// Debug logs a formatted debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.l.Debugf(format, args...)
}

// Puts logs a user-facing message at info level.
func (l *Logger) Puts(message string) {
	l.l.Info(message)
}
