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
	"path/filepath"
	"slices"

	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/packagejson"
)

// UnmarshalJSON implements json.Unmarshaler. An explicit null disables the
// platform; an absent key leaves it to inference.
func (p *PlatformsUserConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["ios"]; ok {
		if isNull(v) {
			p.DisableIOS = true
		} else {
			var c IOSUserConfig
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			p.IOS = &c
		}
	}
	if v, ok := raw["android"]; ok {
		if isNull(v) {
			p.DisableAndroid = true
		} else {
			var c AndroidUserConfig
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			p.Android = &c
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p PlatformsUserConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 2)
	switch {
	case p.DisableIOS:
		out["ios"] = nil
	case p.IOS != nil:
		out["ios"] = p.IOS
	}
	switch {
	case p.DisableAndroid:
		out["android"] = nil
	case p.Android != nil:
		out["android"] = p.Android
	}
	return json.Marshal(out)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ReadPackageConfig extracts the configuration a dependency declares in its
// manifest. The current schema wins when both are present; the legacy schema
// is upgraded with TransformLegacy. The second result reports whether the
// legacy schema was used. A block that does not decode yields an
// *fs.ParseError naming manifestPath.
func ReadPackageConfig(pkg *packagejson.PackageJSON, manifestPath string) (PackageConfig, bool, error) {
	switch {
	case pkg.HasConfig():
		var cfg PackageConfig
		if err := json.Unmarshal(pkg.Config, &cfg); err != nil {
			return PackageConfig{}, false, &fs.ParseError{Path: manifestPath, Err: err}
		}
		return cfg, false, nil
	case pkg.HasLegacyConfig():
		var legacy LegacyConfig
		if err := json.Unmarshal(pkg.LegacyConfig, &legacy); err != nil {
			return PackageConfig{}, true, &fs.ParseError{Path: manifestPath, Err: err}
		}
		return TransformLegacy(legacy, pkg.Name), true, nil
	default:
		return PackageConfig{}, false, nil
	}
}

// ReadProjectConfig extracts the project's own configuration block.
func ReadProjectConfig(pkg *packagejson.PackageJSON, manifestPath string) (ProjectUserConfig, error) {
	var cfg ProjectUserConfig
	if !pkg.HasConfig() {
		return cfg, nil
	}
	if err := json.Unmarshal(pkg.Config, &cfg); err != nil {
		return ProjectUserConfig{}, &fs.ParseError{Path: manifestPath, Err: err}
	}
	var raw struct {
		Dependencies json.RawMessage `json:"dependencies"`
	}
	if err := json.Unmarshal(pkg.Config, &raw); err != nil {
		return ProjectUserConfig{}, &fs.ParseError{Path: manifestPath, Err: err}
	}
	order, err := packagejson.ObjectKeys(raw.Dependencies)
	if err != nil {
		return ProjectUserConfig{}, &fs.ParseError{Path: manifestPath, Err: err}
	}
	cfg.dependencyOrder = order
	return cfg, nil
}

// DependencyNames returns the names of the project's dependency overrides in
// document order.
func (c ProjectUserConfig) DependencyNames() []string {
	if c.dependencyOrder == nil && len(c.Dependencies) > 0 {
		names := make([]string, 0, len(c.Dependencies))
		for name := range c.Dependencies {
			names = append(names, name)
		}
		slices.Sort(names)
		return names
	}
	return append([]string(nil), c.dependencyOrder...)
}

// ExplicitRoots returns the overrides that point at a root directory,
// resolved against projectRoot, in document order.
func (c ProjectUserConfig) ExplicitRoots(projectRoot string) []NamedRoot {
	var roots []NamedRoot
	for _, name := range c.DependencyNames() {
		dep := c.Dependencies[name]
		if dep.Root == nil || *dep.Root == "" {
			continue
		}
		roots = append(roots, NamedRoot{Name: name, Root: resolvePath(projectRoot, *dep.Root)})
	}
	return roots
}

// NamedRoot pairs a dependency name with the directory it lives in.
type NamedRoot struct {
	Name string
	Root string
}

// resolvePath joins a relative p onto base; absolute paths pass through.
func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
