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
	"path"
	"slices"
	"strings"

	"bennypowers.dev/nativeconf/ios"
)

// LegacyConfig is the configuration schema found under a manifest's "rnpm"
// key.
type LegacyConfig struct {
	IOS      *LegacyIOSConfig   `json:"ios,omitempty"`
	Android  *AndroidUserConfig `json:"android,omitempty"`
	Assets   []string           `json:"assets,omitempty"`
	Params   []Param            `json:"params,omitempty"`
	Haste    *Haste             `json:"haste,omitempty"`
	Platform string             `json:"platform,omitempty"`
	Plugin   StringList         `json:"plugin,omitempty"`

	// Commands holds link hooks such as prelink and postlink.
	Commands map[string]string `json:"commands,omitempty"`
}

// LegacyIOSConfig is the iOS block of the legacy schema. Project names either
// an Xcode project or a podspec.
type LegacyIOSConfig struct {
	Project         *string         `json:"project,omitempty"`
	Podspec         *string         `json:"podspec,omitempty"`
	SourceDir       *string         `json:"sourceDir,omitempty"`
	SharedLibraries []string        `json:"sharedLibraries,omitempty"`
	LibraryFolder   *string         `json:"libraryFolder,omitempty"`
	Plist           json.RawMessage `json:"plist,omitempty"`
}

// StringList decodes from either a single string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var one string
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// TransformLegacy rewrites a legacy block into the current schema. Nothing
// is dropped:
//   - ios.project naming a podspec becomes podspec (bare name) and podspecPath;
//     any other project path is kept as project;
//   - haste carries over unchanged;
//   - platform is registered in platforms under every haste platform name,
//     or under packageName when no haste platforms are declared;
//   - plugin becomes a command module;
//   - commands become hooks.
func TransformLegacy(legacy LegacyConfig, packageName string) PackageConfig {
	var out PackageConfig

	if legacy.IOS != nil {
		out.Dependency.Platforms.IOS = transformLegacyIOS(*legacy.IOS)
	}
	if legacy.Android != nil {
		android := *legacy.Android
		out.Dependency.Platforms.Android = &android
	}

	out.Dependency.Assets = slices.Clone(legacy.Assets)
	out.Dependency.Hooks = maps.Clone(legacy.Commands)
	out.Dependency.Params = slices.Clone(legacy.Params)

	out.Commands = slices.Clone([]string(legacy.Plugin))

	if legacy.Haste != nil {
		out.Haste = &Haste{
			ProvidesModuleNodeModules: slices.Clone(legacy.Haste.ProvidesModuleNodeModules),
			Platforms:                 slices.Clone(legacy.Haste.Platforms),
		}
	}

	if legacy.Platform != "" {
		names := []string{packageName}
		if legacy.Haste != nil && len(legacy.Haste.Platforms) > 0 {
			names = legacy.Haste.Platforms
		}
		out.Platforms = make(map[string]string, len(names))
		for _, name := range names {
			out.Platforms[name] = legacy.Platform
		}
	}

	return out
}

func transformLegacyIOS(legacy LegacyIOSConfig) *IOSUserConfig {
	out := &IOSUserConfig{
		Podspec:         legacy.Podspec,
		SourceDir:       legacy.SourceDir,
		SharedLibraries: slices.Clone(legacy.SharedLibraries),
		LibraryFolder:   legacy.LibraryFolder,
		Plist:           slices.Clone(legacy.Plist),
	}
	if legacy.Project == nil {
		return out
	}

	project := *legacy.Project
	if strings.HasSuffix(project, ios.PodspecExt) {
		if out.Podspec == nil {
			name := strings.TrimSuffix(path.Base(project), ios.PodspecExt)
			out.Podspec = &name
		}
		out.PodspecPath = &project
		return out
	}
	out.Project = &project
	return out
}
