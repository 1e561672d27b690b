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

// Package resolve discovers the native packages a project depends on.
package resolve

import (
	"errors"
	"path/filepath"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
)

// ErrNoManifest is returned when no package.json can be found for a project.
var ErrNoManifest = errors.New("no package.json found")

// Resolver produces the resolved configuration for a project.
type Resolver interface {
	// Resolve resolves the project rooted at the given directory.
	Resolve(rootDir string) (*config.ProjectConfig, error)
}

// Logger is an interface for logging messages during resolution.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// FindProjectRoot walks up the directory tree from startDir to the nearest
// directory containing a package.json.
func FindProjectRoot(fsys fs.FileSystem, startDir string) (string, error) {
	dir := startDir
	for {
		if fsys.Exists(filepath.Join(dir, "package.json")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoManifest
		}
		dir = parent
	}
}

// FindNodeModule lists the directories name resolves to from fromDir, nearest
// first: fromDir/node_modules/name, then the same under each ancestor. Only
// directories holding a package.json count.
func FindNodeModule(fsys fs.FileSystem, fromDir, name string) []string {
	var found []string
	dir := fromDir
	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
		if fsys.Exists(filepath.Join(candidate, "package.json")) {
			found = append(found, candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return found
		}
		dir = parent
	}
}
