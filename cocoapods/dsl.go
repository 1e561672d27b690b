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
package cocoapods

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// PodfileTarget is a Target that writes Podfile DSL lines.
type PodfileTarget struct {
	w        io.Writer
	existing []string
	err      error
}

// NewPodfileTarget creates a target that writes to w and treats existing as
// the pods the Podfile already declares.
func NewPodfileTarget(w io.Writer, existing []string) *PodfileTarget {
	return &PodfileTarget{w: w, existing: existing}
}

// Dependencies implements Target.
func (t *PodfileTarget) Dependencies() []string {
	return t.existing
}

// Pod implements Target.
func (t *PodfileTarget) Pod(name string, opts PodOptions) {
	t.printf("pod %s, :path => %s\n", rubyString(name), rubyString(opts.Path))
}

// ScriptPhase implements Target.
func (t *PodfileTarget) ScriptPhase(phase ScriptPhase) {
	args := []string{
		":name => " + rubyString(phase.Name),
		":script => " + rubyString(phase.Script),
	}
	if phase.ExecutionPosition != PositionAny {
		args = append(args, ":execution_position => "+phase.ExecutionPosition.Symbol())
	}
	keys := make([]string, 0, len(phase.Options))
	for k := range phase.Options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, rubyString(k)+" => "+rubyValue(phase.Options[k]))
	}
	t.printf("script_phase %s\n", strings.Join(args, ", "))
}

// Err returns the first write error.
func (t *PodfileTarget) Err() error {
	return t.err
}

func (t *PodfileTarget) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// rubyString quotes s as a single-quoted Ruby string literal.
func rubyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// rubyValue renders a decoded JSON value as a Ruby literal.
func rubyValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return rubyString(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = rubyValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = rubyString(k) + " => " + rubyValue(v[k])
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return rubyString(fmt.Sprint(v))
	}
}
