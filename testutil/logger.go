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
package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// Logger records messages so tests can assert on them. It is safe for
// concurrent use.
type Logger struct {
	mu       sync.Mutex
	warnings []string
	debug    []string
	puts     []string
}

// Warning records a warning.
func (l *Logger) Warning(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

// Debug records a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

// Puts records a user-facing message.
func (l *Logger) Puts(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.puts = append(l.puts, message)
}

// Warnings returns the recorded warnings in order.
func (l *Logger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

// Messages returns the recorded Puts messages in order.
func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.puts...)
}

// HasWarning reports whether any warning contains substr.
func (l *Logger) HasWarning(substr string) bool {
	for _, w := range l.Warnings() {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
