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

// Package android locates the Android artifacts of an installed package:
// its Gradle module, its AndroidManifest.xml and the class that registers
// its native modules.
//
// Absence is never an error here. Only a manifest that exists but is not
// well-formed XML fails.
package android

import (
	"encoding/xml"
	"path/filepath"
	"regexp"

	"bennypowers.dev/nativeconf/fs"
)

// sourceDirCandidates are checked in order, relative to the package root.
var sourceDirCandidates = []string{
	filepath.Join("android", "app"),
	"android",
}

// manifestIgnore excludes build outputs, debug variants and sample apps.
var manifestIgnore = []string{
	"node_modules/**",
	"**/build/**",
	"**/debug/**",
	"Examples/**",
	"examples/**",
}

// FindSourceDir returns the absolute path of the package's Android module, or
// "" if it has none. A candidate qualifies when it holds a Gradle build file
// or a src directory.
func FindSourceDir(fsys fs.FileSystem, root string) string {
	for _, candidate := range sourceDirCandidates {
		dir := filepath.Join(root, candidate)
		if !fs.IsDir(fsys, dir) {
			continue
		}
		if fsys.Exists(filepath.Join(dir, "build.gradle")) ||
			fsys.Exists(filepath.Join(dir, "build.gradle.kts")) ||
			fs.IsDir(fsys, filepath.Join(dir, "src")) {
			return dir
		}
	}
	return ""
}

// FindManifest returns the path of the first AndroidManifest.xml below
// sourceDir, or "" if there is none.
func FindManifest(fsys fs.FileSystem, sourceDir string) string {
	if sourceDir == "" {
		return ""
	}
	matches, err := fs.Glob(fsys, sourceDir, "**/AndroidManifest.xml", manifestIgnore...)
	if err != nil || len(matches) == 0 {
		return ""
	}
	return filepath.FromSlash(matches[0])
}

// Manifest is the part of AndroidManifest.xml that linking needs.
type Manifest struct {
	XMLName xml.Name
	Package string `xml:"package,attr"`
}

// ReadManifest parses the manifest at path. A file that is not well-formed
// XML yields an *fs.ParseError. A well-formed file whose root is not
// <manifest> declares no package.
func ReadManifest(fsys fs.FileSystem, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, &fs.ParseError{Path: path, Err: err}
	}
	if m.XMLName.Local != "manifest" {
		return &Manifest{XMLName: m.XMLName}, nil
	}
	return &m, nil
}

var namespacePattern = regexp.MustCompile(`(?m)^\s*namespace\s*=?\s*["']([\w.]+)["']`)

// ReadNamespace returns the namespace declared in the module's Gradle build
// file. Newer modules declare their package there instead of in the manifest.
func ReadNamespace(fsys fs.FileSystem, sourceDir string) string {
	if sourceDir == "" {
		return ""
	}
	for _, name := range []string{"build.gradle", "build.gradle.kts"} {
		data, err := fsys.ReadFile(filepath.Join(sourceDir, name))
		if err != nil {
			continue
		}
		if m := namespacePattern.FindSubmatch(data); m != nil {
			return string(m[1])
		}
	}
	return ""
}
