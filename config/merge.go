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
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/nativeconf/ios"
)

// Defaults returns the built-in configuration for a project at root.
func Defaults(root string) ProjectConfig {
	return ProjectConfig{
		Root:            root,
		ReactNativePath: filepath.Join(root, "node_modules", "react-native"),
		Commands:        []string{},
		Platforms:       map[string]string{},
		Haste: Haste{
			ProvidesModuleNodeModules: []string{},
			Platforms:                 []string{},
		},
	}
}

// Merge assembles the resolved configuration. Later layers win field by
// field:
//
//	defaults < contributions < overrides[name] < top
//
// Commands are the defaults', then the project's own, then each
// contribution's in order. Platforms are merged key by key with the project
// last. Haste lists are unioned. No argument is modified.
func Merge(defaults ProjectConfig, contributions []Contribution, overrides map[string]DependencyUserConfig, top ProjectUserConfig) *ProjectConfig {
	out := defaults.Clone()

	out.Commands = append(out.Commands, top.Commands...)
	for _, c := range contributions {
		out.Commands = append(out.Commands, c.Commands...)
	}

	for _, c := range contributions {
		maps.Copy(out.Platforms, c.Platforms)
	}
	maps.Copy(out.Platforms, top.Platforms)

	for _, c := range contributions {
		if c.Haste != nil {
			out.Haste = MergeHaste(out.Haste, *c.Haste)
		}
	}
	if top.Haste != nil {
		out.Haste = MergeHaste(out.Haste, *top.Haste)
	}

	for _, c := range contributions {
		out.Dependencies.Set(c.Dependency.Name, MergeDependency(c.Dependency, overrides[c.Dependency.Name]))
	}

	if top.ReactNativePath != nil {
		out.ReactNativePath = resolvePath(out.Root, *top.ReactNativePath)
	}
	out.Project = MergeProjectSettings(out.Project, top.Project)

	return &out
}

// MergeDependency applies a project's override for one dependency. Nested
// records merge field by field, lists are replaced, hooks merge by key.
func MergeDependency(base Dependency, override DependencyUserConfig) Dependency {
	out := base.Clone()

	if override.Platforms.DisableIOS {
		out.IOS = nil
	} else {
		out.IOS = MergeIOS(out.IOS, override.Platforms.IOS)
	}
	if override.Platforms.DisableAndroid {
		out.Android = nil
	} else {
		out.Android = MergeAndroid(out.Android, override.Platforms.Android)
	}

	if override.Assets != nil {
		out.Assets = slices.Clone(override.Assets)
	}
	if override.Params != nil {
		out.Params = slices.Clone(override.Params)
	}
	if len(override.Hooks) > 0 {
		if out.Hooks == nil {
			out.Hooks = make(map[string]string, len(override.Hooks))
		}
		maps.Copy(out.Hooks, override.Hooks)
	}
	return out
}

// MergeIOS applies override to base. A result without a podspec is nil.
func MergeIOS(base *IOSDependencyConfig, override *IOSUserConfig) *IOSDependencyConfig {
	if override == nil {
		return base.clone()
	}
	out := base.clone()
	if out == nil {
		out = &IOSDependencyConfig{}
	}
	if override.Podspec != nil {
		if name := strings.TrimSuffix(*override.Podspec, ios.PodspecExt); name != "" {
			out.Podspec = name + ios.PodspecExt
		}
	}
	setString(&out.PodspecPath, override.PodspecPath)
	setString(&out.SourceDir, override.SourceDir)
	setString(&out.Project, override.Project)
	setString(&out.LibraryFolder, override.LibraryFolder)
	if override.SharedLibraries != nil {
		out.SharedLibraries = slices.Clone(override.SharedLibraries)
	}
	if override.Plist != nil {
		out.Plist = slices.Clone(override.Plist)
	}
	if override.ScriptPhases != nil {
		out.ScriptPhases = cloneScriptPhases(override.ScriptPhases)
	}
	if out.Podspec == "" {
		return nil
	}
	return out
}

// MergeAndroid applies override to base. Both PackageImportPath and
// PackageInstance must survive the merge, otherwise the result is nil.
func MergeAndroid(base *AndroidDependencyConfig, override *AndroidUserConfig) *AndroidDependencyConfig {
	if override == nil {
		return base.clone()
	}
	out := base.clone()
	if out == nil {
		out = &AndroidDependencyConfig{}
	}
	setString(&out.SourceDir, override.SourceDir)
	setString(&out.ManifestPath, override.ManifestPath)
	setString(&out.PackageImportPath, override.PackageImportPath)
	setString(&out.PackageInstance, override.PackageInstance)
	if out.PackageImportPath == "" || out.PackageInstance == "" {
		return nil
	}
	return out
}

// MergeHaste returns the union of a and b, keeping first-seen order.
func MergeHaste(a, b Haste) Haste {
	return Haste{
		ProvidesModuleNodeModules: union(a.ProvidesModuleNodeModules, b.ProvidesModuleNodeModules),
		Platforms:                 union(a.Platforms, b.Platforms),
	}
}

// MergeProjectSettings applies the project's declared settings to the
// inferred ones.
func MergeProjectSettings(inferred ProjectSettings, user ProjectSettingsUserConfig) ProjectSettings {
	out := inferred.Clone()
	if u := user.IOS; u != nil {
		if out.IOS == nil {
			out.IOS = &IOSProjectConfig{}
		}
		setString(&out.IOS.SourceDir, u.SourceDir)
		setString(&out.IOS.PodfilePath, u.PodfilePath)
		setString(&out.IOS.ProjectPath, u.ProjectPath)
	}
	if u := user.Android; u != nil {
		if out.Android == nil {
			out.Android = &AndroidProjectConfig{}
		}
		setString(&out.Android.SourceDir, u.SourceDir)
		setString(&out.Android.AppName, u.AppName)
		setString(&out.Android.ManifestPath, u.ManifestPath)
		setString(&out.Android.PackageName, u.PackageName)
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range slices.Concat(a, b) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy.
func (d Dependency) Clone() Dependency {
	d.IOS = d.IOS.clone()
	d.Android = d.Android.clone()
	d.Assets = slices.Clone(d.Assets)
	d.Hooks = maps.Clone(d.Hooks)
	d.Params = slices.Clone(d.Params)
	return d
}

func (c *IOSDependencyConfig) clone() *IOSDependencyConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.SharedLibraries = slices.Clone(c.SharedLibraries)
	out.Plist = slices.Clone(c.Plist)
	out.ScriptPhases = cloneScriptPhases(c.ScriptPhases)
	return &out
}

func (c *AndroidDependencyConfig) clone() *AndroidDependencyConfig {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// Clone returns a deep copy.
func (p ProjectSettings) Clone() ProjectSettings {
	if p.IOS != nil {
		iosCfg := *p.IOS
		p.IOS = &iosCfg
	}
	if p.Android != nil {
		androidCfg := *p.Android
		p.Android = &androidCfg
	}
	return p
}

// Clone returns a deep copy.
func (c ProjectConfig) Clone() ProjectConfig {
	c.Dependencies = c.Dependencies.Clone()
	c.Commands = slices.Clone(c.Commands)
	if c.Commands == nil {
		c.Commands = []string{}
	}
	c.Platforms = maps.Clone(c.Platforms)
	if c.Platforms == nil {
		c.Platforms = map[string]string{}
	}
	c.Haste = Haste{
		ProvidesModuleNodeModules: union(nil, c.Haste.ProvidesModuleNodeModules),
		Platforms:                 union(nil, c.Haste.Platforms),
	}
	c.Project = c.Project.Clone()
	return c
}
