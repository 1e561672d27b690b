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
package cocoapods

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/ios"
)

// podNamePattern matches a literal name assignment such as
// `s.name = "RNFoo"`. Computed names fall back to the file name.
var podNamePattern = regexp.MustCompile(`(?m)^\s*\w+\.name\s*=\s*['"]([^'"]+)['"]`)

// ReadPodName returns the pod name a podspec declares. JSON podspecs are
// decoded; Ruby podspecs are scanned for a literal name. When neither yields
// a name, the file name without its extension is used.
func ReadPodName(fsys fs.FileSystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}

	if strings.HasSuffix(path, ".json") {
		var spec struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &spec); err != nil {
			return "", &fs.ParseError{Path: path, Err: err}
		}
		if spec.Name != "" {
			return spec.Name, nil
		}
	} else if m := podNamePattern.FindSubmatch(data); m != nil {
		return string(m[1]), nil
	}

	return podNameFromFile(path), nil
}

func podNameFromFile(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".json")
	return strings.TrimSuffix(base, ios.PodspecExt)
}
