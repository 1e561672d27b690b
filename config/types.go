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

// Package config defines the native linking configuration schema, builds
// per-dependency configuration from inference and declared fields, upgrades
// the legacy schema, and merges everything into one ProjectConfig.
//
// Two families of types live here. The *UserConfig types mirror what a
// manifest may declare: every field is optional and a nil pointer means
// "not set". The resolved types (Dependency, IOSDependencyConfig,
// AndroidDependencyConfig, ProjectConfig) are what resolution produces.
package config

import "encoding/json"

// Dependency is the resolved configuration of one native dependency.
type Dependency struct {
	Name    string                   `json:"name"`
	Root    string                   `json:"root"`
	IOS     *IOSDependencyConfig     `json:"ios"`
	Android *AndroidDependencyConfig `json:"android"`
	Assets  []string                 `json:"assets"`
	Hooks   map[string]string        `json:"hooks"`
	Params  []Param                  `json:"params"`

	// LegacyProjectPath keeps an Xcode project path declared by the
	// dependency. It has no podspec-based equivalent.
	LegacyProjectPath string `json:"legacyProjectPath,omitempty"`
}

// IOSDependencyConfig describes how to link a dependency's pod.
// Podspec is always a filename ending in ".podspec".
type IOSDependencyConfig struct {
	Podspec         string          `json:"podspec"`
	PodspecPath     string          `json:"podspecPath,omitempty"`
	SourceDir       string          `json:"sourceDir,omitempty"`
	Project         string          `json:"project,omitempty"`
	SharedLibraries []string        `json:"sharedLibraries,omitempty"`
	LibraryFolder   string          `json:"libraryFolder,omitempty"`
	Plist           json.RawMessage `json:"plist,omitempty"`
	ScriptPhases    ScriptPhases    `json:"scriptPhases,omitempty"`
}

// AndroidDependencyConfig describes how to register a dependency's package
// class. A non-nil value always carries both PackageImportPath and
// PackageInstance.
type AndroidDependencyConfig struct {
	SourceDir         string `json:"sourceDir,omitempty"`
	ManifestPath      string `json:"manifestPath,omitempty"`
	PackageImportPath string `json:"packageImportPath"`
	PackageInstance   string `json:"packageInstance"`
}

// Param is a prompt a dependency asks for when it is linked.
type Param struct {
	Type    string `json:"type,omitempty"`
	Name    string `json:"name"`
	Message string `json:"message,omitempty"`
	Default any    `json:"default,omitempty"`
}

// Haste lists extra haste platforms and module roots.
type Haste struct {
	ProvidesModuleNodeModules []string `json:"providesModuleNodeModules"`
	Platforms                 []string `json:"platforms"`
}

// IOSUserConfig is the declarable, all-optional form of IOSDependencyConfig.
type IOSUserConfig struct {
	Podspec         *string         `json:"podspec,omitempty"`
	PodspecPath     *string         `json:"podspecPath,omitempty"`
	SourceDir       *string         `json:"sourceDir,omitempty"`
	Project         *string         `json:"project,omitempty"`
	SharedLibraries []string        `json:"sharedLibraries,omitempty"`
	LibraryFolder   *string         `json:"libraryFolder,omitempty"`
	Plist           json.RawMessage `json:"plist,omitempty"`
	ScriptPhases    ScriptPhases    `json:"scriptPhases,omitempty"`
}

// AndroidUserConfig is the declarable, all-optional form of
// AndroidDependencyConfig. SourceDir, ManifestPath and PackageName steer
// inference; they are not required.
type AndroidUserConfig struct {
	SourceDir         *string `json:"sourceDir,omitempty"`
	ManifestPath      *string `json:"manifestPath,omitempty"`
	PackageName       *string `json:"packageName,omitempty"`
	PackageImportPath *string `json:"packageImportPath,omitempty"`
	PackageInstance   *string `json:"packageInstance,omitempty"`
}

// PlatformsUserConfig holds per-platform user configuration. A platform set
// to JSON null is disabled: the dependency is not linked on it.
type PlatformsUserConfig struct {
	IOS            *IOSUserConfig
	Android        *AndroidUserConfig
	DisableIOS     bool
	DisableAndroid bool
}

// DependencyUserConfig is what a package declares about itself, or what a
// project declares about one of its dependencies.
type DependencyUserConfig struct {
	// Root points at a dependency outside node_modules. Only meaningful in
	// a project's override map.
	Root      *string             `json:"root,omitempty"`
	Platforms PlatformsUserConfig `json:"platforms"`
	Assets    []string            `json:"assets,omitempty"`
	Hooks     map[string]string   `json:"hooks,omitempty"`
	Params    []Param             `json:"params,omitempty"`
}

// PackageConfig is the current-schema block a dependency declares in its
// manifest.
type PackageConfig struct {
	Dependency DependencyUserConfig `json:"dependency"`
	Commands   []string             `json:"commands,omitempty"`
	Platforms  map[string]string    `json:"platforms,omitempty"`
	Haste      *Haste               `json:"haste,omitempty"`
}

// ProjectUserConfig is the configuration block of the consuming project's
// own manifest.
type ProjectUserConfig struct {
	ReactNativePath *string                         `json:"reactNativePath,omitempty"`
	Dependencies    map[string]DependencyUserConfig `json:"dependencies,omitempty"`
	Commands        []string                        `json:"commands,omitempty"`
	Platforms       map[string]string               `json:"platforms,omitempty"`
	Haste           *Haste                          `json:"haste,omitempty"`
	Project         ProjectSettingsUserConfig       `json:"project"`

	dependencyOrder []string
}

// ProjectConfig is the resolved configuration handed to linking tools.
// It is a snapshot; nothing mutates it after Merge returns.
type ProjectConfig struct {
	Root            string            `json:"root"`
	ReactNativePath string            `json:"reactNativePath"`
	Dependencies    DependencyMap     `json:"dependencies"`
	Commands        []string          `json:"commands"`
	Platforms       map[string]string `json:"platforms"`
	Haste           Haste             `json:"haste"`
	Project         ProjectSettings   `json:"project"`
}

// ProjectSettings are the app's own native project locations.
type ProjectSettings struct {
	IOS     *IOSProjectConfig     `json:"ios"`
	Android *AndroidProjectConfig `json:"android"`
}

// IOSProjectConfig locates the app's iOS project.
type IOSProjectConfig struct {
	SourceDir   string `json:"sourceDir"`
	PodfilePath string `json:"podfilePath,omitempty"`
	ProjectPath string `json:"projectPath,omitempty"`
}

// AndroidProjectConfig locates the app's Android project.
type AndroidProjectConfig struct {
	SourceDir    string `json:"sourceDir"`
	AppName      string `json:"appName,omitempty"`
	ManifestPath string `json:"manifestPath,omitempty"`
	PackageName  string `json:"packageName,omitempty"`
}

// ProjectSettingsUserConfig overrides inferred ProjectSettings.
type ProjectSettingsUserConfig struct {
	IOS     *IOSProjectUserConfig     `json:"ios,omitempty"`
	Android *AndroidProjectUserConfig `json:"android,omitempty"`
}

// IOSProjectUserConfig is the all-optional form of IOSProjectConfig.
type IOSProjectUserConfig struct {
	SourceDir   *string `json:"sourceDir,omitempty"`
	PodfilePath *string `json:"podfilePath,omitempty"`
	ProjectPath *string `json:"projectPath,omitempty"`
}

// AndroidProjectUserConfig is the all-optional form of AndroidProjectConfig.
type AndroidProjectUserConfig struct {
	SourceDir    *string `json:"sourceDir,omitempty"`
	AppName      *string `json:"appName,omitempty"`
	ManifestPath *string `json:"manifestPath,omitempty"`
	PackageName  *string `json:"packageName,omitempty"`
}

// Contribution is everything one walked package feeds into the merge.
// Paths in Commands and Platforms are absolute.
type Contribution struct {
	Dependency Dependency
	Commands   []string
	Platforms  map[string]string
	Haste      *Haste
}
