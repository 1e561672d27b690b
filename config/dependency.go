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
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/nativeconf/android"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/ios"
)

// BuildDependency combines inference under root with the fields the package
// declares about itself. Only malformed input is an error: a manifest that is
// not well-formed XML yields an *fs.ParseError. Everything else that cannot be
// found leaves the platform nil.
func BuildDependency(fsys fs.FileSystem, name, root string, user DependencyUserConfig) (Dependency, error) {
	dep := Dependency{
		Name:   name,
		Root:   root,
		Assets: []string{},
		Hooks:  map[string]string{},
		Params: []Param{},
	}
	if user.Assets != nil {
		dep.Assets = slices.Clone(user.Assets)
	}
	if user.Hooks != nil {
		dep.Hooks = maps.Clone(user.Hooks)
	}
	if user.Params != nil {
		dep.Params = slices.Clone(user.Params)
	}

	if iosUser := user.Platforms.IOS; iosUser != nil && iosUser.Project != nil {
		dep.LegacyProjectPath = *iosUser.Project
	}

	if !user.Platforms.DisableIOS {
		dep.IOS = BuildIOS(fsys, root, user.Platforms.IOS)
	}
	if !user.Platforms.DisableAndroid {
		a, err := BuildAndroid(fsys, root, user.Platforms.Android)
		if err != nil {
			return Dependency{}, fmt.Errorf("android config for %s: %w", name, err)
		}
		dep.Android = a
	}
	return dep, nil
}

// BuildIOS resolves the iOS variant of a dependency, or nil if it ships no
// podspec. The stored Podspec always carries the ".podspec" extension.
func BuildIOS(fsys fs.FileSystem, root string, user *IOSUserConfig) *IOSDependencyConfig {
	if user == nil {
		user = &IOSUserConfig{}
	}

	name := ""
	if user.Podspec != nil {
		name = strings.TrimSuffix(*user.Podspec, ios.PodspecExt)
	}
	if name == "" {
		name = ios.FindPodspecName(fsys, root)
	}
	if name == "" {
		return nil
	}

	cfg := &IOSDependencyConfig{
		Podspec:         name + ios.PodspecExt,
		SourceDir:       root,
		SharedLibraries: slices.Clone(user.SharedLibraries),
		Plist:           slices.Clone(user.Plist),
		ScriptPhases:    cloneScriptPhases(user.ScriptPhases),
	}
	if user.PodspecPath != nil {
		cfg.PodspecPath = resolvePath(root, *user.PodspecPath)
	} else if p := filepath.Join(root, cfg.Podspec); fsys.Exists(p) {
		cfg.PodspecPath = p
	}
	if user.SourceDir != nil {
		cfg.SourceDir = resolvePath(root, *user.SourceDir)
	}
	if user.Project != nil {
		cfg.Project = *user.Project
	}
	if user.LibraryFolder != nil {
		cfg.LibraryFolder = *user.LibraryFolder
	}
	return cfg
}

// BuildAndroid resolves the Android variant of a dependency. Declared
// packageInstance and packageImportPath are used verbatim; the rest is
// inferred from the module's source tree. When either value cannot be
// determined the result is nil: a half-known registration would produce
// broken generated code.
func BuildAndroid(fsys fs.FileSystem, root string, user *AndroidUserConfig) (*AndroidDependencyConfig, error) {
	if user == nil {
		user = &AndroidUserConfig{}
	}

	sourceDir := ""
	if user.SourceDir != nil {
		sourceDir = resolvePath(root, *user.SourceDir)
	} else {
		sourceDir = android.FindSourceDir(fsys, root)
	}

	importPath := deref(user.PackageImportPath)
	instance := deref(user.PackageInstance)

	if sourceDir == "" {
		if importPath == "" || instance == "" {
			return nil, nil
		}
		return &AndroidDependencyConfig{PackageImportPath: importPath, PackageInstance: instance}, nil
	}

	manifestPath := ""
	if user.ManifestPath != nil {
		manifestPath = resolvePath(sourceDir, *user.ManifestPath)
	} else {
		manifestPath = android.FindManifest(fsys, sourceDir)
	}

	if importPath == "" || instance == "" {
		class := android.FindPackageClassName(fsys, sourceDir)
		if class != nil {
			if instance == "" {
				instance = "new " + class.Name + "()"
			}
			if importPath == "" {
				pkg, err := manifestPackage(fsys, sourceDir, manifestPath, user.PackageName)
				if err != nil {
					return nil, err
				}
				if pkg != "" {
					importPath = "import " + pkg + "." + class.Name + ";"
				}
			}
		}
	}

	if importPath == "" || instance == "" {
		return nil, nil
	}
	return &AndroidDependencyConfig{
		SourceDir:         sourceDir,
		ManifestPath:      manifestPath,
		PackageImportPath: importPath,
		PackageInstance:   instance,
	}, nil
}

// manifestPackage returns the declared package name, the manifest's package
// attribute, or the Gradle namespace, in that order.
func manifestPackage(fsys fs.FileSystem, sourceDir, manifestPath string, declared *string) (string, error) {
	if declared != nil && *declared != "" {
		return *declared, nil
	}
	if manifestPath != "" {
		m, err := android.ReadManifest(fsys, manifestPath)
		var parseErr *fs.ParseError
		switch {
		case errors.As(err, &parseErr):
			return "", err
		case err == nil && m.Package != "":
			return m.Package, nil
		}
	}
	return android.ReadNamespace(fsys, sourceDir), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneScriptPhases(phases ScriptPhases) ScriptPhases {
	if phases == nil {
		return nil
	}
	out := make(ScriptPhases, len(phases))
	for i, p := range phases {
		out[i] = p.clone()
	}
	return out
}
