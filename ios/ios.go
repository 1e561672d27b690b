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

// Package ios locates the iOS artifacts of a package or project.
package ios

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/nativeconf/fs"
)

// PodspecExt is the pod specification file extension.
const PodspecExt = ".podspec"

// FindPodspecName returns the base name, without extension, of the single
// podspec file in root. Zero or several candidates yield "".
//
// The bare name is what the older link tooling expects; callers that need a
// filename append PodspecExt.
func FindPodspecName(fsys fs.FileSystem, root string) string {
	names := fs.MatchDir(fsys, root, "*"+PodspecExt)
	if len(names) != 1 {
		return ""
	}
	return strings.TrimSuffix(names[0], PodspecExt)
}

// FindProject returns the path of the first Xcode project directory in dir,
// or "" if there is none.
func FindProject(fsys fs.FileSystem, dir string) string {
	for _, name := range fs.MatchDir(fsys, dir, "*.xcodeproj") {
		p := filepath.Join(dir, name)
		if fs.IsDir(fsys, p) {
			return p
		}
	}
	return ""
}

// FindPodfile returns the path of dir's Podfile, or "".
func FindPodfile(fsys fs.FileSystem, dir string) string {
	p := filepath.Join(dir, "Podfile")
	if fsys.Exists(p) {
		return p
	}
	return ""
}
