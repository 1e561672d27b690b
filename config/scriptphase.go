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
package config

import (
	"bytes"
	"encoding/json"
	"maps"
)

// ScriptPhase is a build script a pod wants injected into the app target.
// Either Script or Path is set; Path is relative to the dependency root.
// Keys other than the named ones are kept in Options and passed through.
type ScriptPhase struct {
	Name              string
	Script            string
	Path              string
	ExecutionPosition string
	Options           map[string]any
}

var scriptPhaseKeys = []string{"name", "script", "path", "execution_position"}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ScriptPhase) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	str := func(key string) string {
		v, _ := raw[key].(string)
		return v
	}
	*s = ScriptPhase{
		Name:              str("name"),
		Script:            str("script"),
		Path:              str("path"),
		ExecutionPosition: str("execution_position"),
	}
	for _, key := range scriptPhaseKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		s.Options = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s ScriptPhase) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Options)+4)
	maps.Copy(out, s.Options)
	for key, value := range map[string]string{
		"name":               s.Name,
		"script":             s.Script,
		"path":               s.Path,
		"execution_position": s.ExecutionPosition,
	} {
		if value != "" {
			out[key] = value
		}
	}
	return json.Marshal(out)
}

// ScriptPhases accepts either a single phase object or an array of them.
type ScriptPhases []ScriptPhase

// UnmarshalJSON implements json.Unmarshaler.
func (p *ScriptPhases) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one ScriptPhase
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*p = ScriptPhases{one}
		return nil
	}
	var many []ScriptPhase
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*p = many
	return nil
}

func (s ScriptPhase) clone() ScriptPhase {
	s.Options = maps.Clone(s.Options)
	return s
}
