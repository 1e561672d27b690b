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
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob walks root and returns the absolute paths of files whose slash-separated
// path relative to root matches pattern. Paths matching any ignore pattern are
// excluded. Results come back in lexical walk order.
//
// node_modules directories are never descended into.
func Glob(fsys FileSystem, root, pattern string, ignore ...string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	for _, ig := range ignore {
		if !doublestar.ValidatePattern(ig) {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", ig, doublestar.ErrBadPattern)
		}
	}

	root = filepath.ToSlash(root)
	var matches []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == "" {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || dirIgnored(ignore, rel) {
				return fs.SkipDir
			}
			return nil
		}
		for _, ig := range ignore {
			if ok, _ := doublestar.Match(ig, rel); ok {
				return nil
			}
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matches = append(matches, path.Join(root, rel))
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return nil, err
	}
	return matches, nil
}

// dirIgnored reports whether an ignore pattern of the form "<dir>/**"
// excludes everything below the directory rel.
func dirIgnored(ignore []string, rel string) bool {
	for _, ig := range ignore {
		prefix, ok := strings.CutSuffix(ig, "/**")
		if !ok {
			continue
		}
		if matched, _ := doublestar.Match(prefix, rel); matched {
			return true
		}
	}
	return false
}

// MatchDir returns the names of the direct children of dir matching pattern.
func MatchDir(fsys FileSystem, dir, pattern string) []string {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if ok, _ := doublestar.Match(pattern, entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	return names
}
