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
package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/nativeconf/cocoapods"
	"bennypowers.dev/nativeconf/internal/logging"
	"bennypowers.dev/nativeconf/resolve"
)

var (
	_ resolve.Logger = (*logging.Logger)(nil)
	_ cocoapods.UI   = (*logging.Logger)(nil)
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)

	logger.Warning("Skipping %s", "react-native-foo")
	logger.Debug("hidden %d", 1)
	logger.Puts("Detected native module pod for RNFoo")

	out := buf.String()
	for _, want := range []string{"Skipping react-native-foo", "Detected native module pod for RNFoo", "nativeconf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged without verbose: %q", out)
	}
}

func TestLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, true).Debug("resolved %s", "react-native-bar")

	if !strings.Contains(buf.String(), "resolved react-native-bar") {
		t.Errorf("output = %q, want the debug message", buf.String())
	}
}
