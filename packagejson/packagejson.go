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
// Package packagejson parses the package.json manifests of a project and of
// its installed dependencies.
package packagejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bennypowers.dev/nativeconf/fs"
)

const (
	// ConfigKey is the manifest key holding the current configuration schema.
	ConfigKey = "react-native"
	// LegacyConfigKey is the manifest key holding the legacy configuration schema.
	LegacyConfigKey = "rnpm"
)

// PackageJSON represents the subset of package.json relevant for native linking.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`

	// Config is the raw current-schema block, if any.
	Config json.RawMessage `json:"react-native,omitempty"`
	// LegacyConfig is the raw legacy-schema block, if any.
	LegacyConfig json.RawMessage `json:"rnpm,omitempty"`

	dependencyOrder []string
}

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	var raw struct {
		Dependencies    json.RawMessage `json:"dependencies"`
		DevDependencies json.RawMessage `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	deps, err := ObjectKeys(raw.Dependencies)
	if err != nil {
		return nil, err
	}
	devDeps, err := ObjectKeys(raw.DevDependencies)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(deps)+len(devDeps))
	for _, name := range append(deps, devDeps...) {
		if !seen[name] {
			seen[name] = true
			pkg.dependencyOrder = append(pkg.dependencyOrder, name)
		}
	}
	return &pkg, nil
}

// ParseFile parses a package.json file. Malformed JSON is reported as an
// *fs.ParseError carrying the offending path.
func ParseFile(fsys fs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, &fs.ParseError{Path: path, Err: err}
	}
	return pkg, nil
}

// DependencyNames returns dependencies followed by devDependencies, in the
// order they are written in the manifest, without duplicates.
func (pkg *PackageJSON) DependencyNames() []string {
	return append([]string(nil), pkg.dependencyOrder...)
}

// HasConfig reports whether the manifest declares a current-schema block.
func (pkg *PackageJSON) HasConfig() bool {
	return isPresent(pkg.Config)
}

// HasLegacyConfig reports whether the manifest declares a legacy-schema block.
func (pkg *PackageJSON) HasLegacyConfig() bool {
	return isPresent(pkg.LegacyConfig)
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// ObjectKeys returns the keys of a JSON object in document order.
// Empty input and null yield no keys.
func ObjectKeys(raw json.RawMessage) ([]string, error) {
	if !isPresent(raw) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// PackageName extracts the package name from a package spec.
// Handles scoped packages (@scope/name) and subpaths (foo/subspec).
func PackageName(spec string) string {
	if strings.HasPrefix(spec, "@") {
		parts := strings.SplitN(spec, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return spec
	}
	if idx := strings.Index(spec, "/"); idx > 0 {
		return spec[:idx]
	}
	return spec
}
