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
	"errors"
	"fmt"
)

// ErrUnknownExecutionPosition is returned for an execution position CocoaPods
// does not define.
var ErrUnknownExecutionPosition = errors.New("unknown execution position")

// ExecutionPosition is where a script phase runs relative to the target's
// compile and header phases.
type ExecutionPosition int

const (
	// PositionAny lets CocoaPods place the phase. It is the default.
	PositionAny ExecutionPosition = iota
	PositionBeforeCompile
	PositionAfterCompile
	PositionBeforeHeaders
	PositionAfterHeaders
)

var positionNames = map[ExecutionPosition]string{
	PositionAny:           "any",
	PositionBeforeCompile: "before_compile",
	PositionAfterCompile:  "after_compile",
	PositionBeforeHeaders: "before_headers",
	PositionAfterHeaders:  "after_headers",
}

// ParseExecutionPosition converts a position name such as "before_compile".
// The empty string is PositionAny.
func ParseExecutionPosition(s string) (ExecutionPosition, error) {
	if s == "" {
		return PositionAny, nil
	}
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return PositionAny, fmt.Errorf("%w: %q", ErrUnknownExecutionPosition, s)
}

// String returns the position's CocoaPods name.
func (p ExecutionPosition) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("ExecutionPosition(%d)", int(p))
}

// Symbol returns the position as a Ruby symbol literal, e.g. ":before_compile".
func (p ExecutionPosition) Symbol() string {
	return ":" + p.String()
}
