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
package loader

import (
	"path/filepath"

	"bennypowers.dev/nativeconf/android"
	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/ios"
)

// InferProjectSettings locates the app's own iOS and Android projects under
// root. A platform without a project directory is nil. A malformed
// AndroidManifest.xml yields an *fs.ParseError.
func InferProjectSettings(fsys fs.FileSystem, root string) (config.ProjectSettings, error) {
	var settings config.ProjectSettings

	if iosDir := filepath.Join(root, "ios"); fs.IsDir(fsys, iosDir) {
		settings.IOS = &config.IOSProjectConfig{
			SourceDir:   iosDir,
			PodfilePath: ios.FindPodfile(fsys, iosDir),
			ProjectPath: ios.FindProject(fsys, iosDir),
		}
	}

	sourceDir := android.FindSourceDir(fsys, root)
	if sourceDir == "" {
		return settings, nil
	}
	a := &config.AndroidProjectConfig{
		SourceDir:    sourceDir,
		ManifestPath: android.FindManifest(fsys, sourceDir),
	}
	if sourceDir == filepath.Join(root, "android", "app") {
		a.AppName = "app"
	}
	if a.ManifestPath != "" {
		m, err := android.ReadManifest(fsys, a.ManifestPath)
		if fs.IsParseError(err) {
			return config.ProjectSettings{}, err
		}
		if m != nil {
			a.PackageName = m.Package
		}
	}
	if a.PackageName == "" {
		a.PackageName = android.ReadNamespace(fsys, sourceDir)
	}
	settings.Android = a
	return settings, nil
}
