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
	"fmt"
	"iter"

	"bennypowers.dev/nativeconf/packagejson"
)

// DependencyMap maps dependency names to their configuration and remembers
// insertion order. Iteration and JSON encoding follow that order, so output
// is stable across runs.
type DependencyMap struct {
	names  []string
	byName map[string]Dependency
}

// NewDependencyMap builds a map from deps, keeping their order. A later
// entry with a repeated name replaces the earlier value in place.
func NewDependencyMap(deps ...Dependency) DependencyMap {
	var m DependencyMap
	for _, d := range deps {
		m.Set(d.Name, d)
	}
	return m
}

// Set adds or replaces name. Replacing keeps the original position.
func (m *DependencyMap) Set(name string, dep Dependency) {
	if m.byName == nil {
		m.byName = make(map[string]Dependency)
	}
	if _, ok := m.byName[name]; !ok {
		m.names = append(m.names, name)
	}
	m.byName[name] = dep
}

// Get returns the dependency called name.
func (m DependencyMap) Get(name string) (Dependency, bool) {
	dep, ok := m.byName[name]
	return dep, ok
}

// Len returns the number of dependencies.
func (m DependencyMap) Len() int {
	return len(m.names)
}

// Names returns the dependency names in order.
func (m DependencyMap) Names() []string {
	return append([]string(nil), m.names...)
}

// All iterates the dependencies in order.
func (m DependencyMap) All() iter.Seq2[string, Dependency] {
	return func(yield func(string, Dependency) bool) {
		for _, name := range m.names {
			if !yield(name, m.byName[name]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (m DependencyMap) Clone() DependencyMap {
	var out DependencyMap
	for name, dep := range m.All() {
		out.Set(name, dep.Clone())
	}
	return out
}

// MarshalJSON implements json.Marshaler, writing keys in order.
func (m DependencyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.byName[name])
		if err != nil {
			return nil, fmt.Errorf("encoding dependency %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping document order.
// A dependency without a name takes its key.
func (m *DependencyMap) UnmarshalJSON(data []byte) error {
	keys, err := packagejson.ObjectKeys(data)
	if err != nil {
		return err
	}
	var raw map[string]Dependency
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = DependencyMap{}
	for _, key := range keys {
		dep := raw[key]
		if dep.Name == "" {
			dep.Name = key
		}
		m.Set(key, dep)
	}
	return nil
}
