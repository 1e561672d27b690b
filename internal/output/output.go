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

// Package output writes command results to stdout or the --output file.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bennypowers.dev/nativeconf/fs"
)

// JSON writes v as indented JSON.
func JSON(osfs fs.FileSystem, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return Text(osfs, string(data))
}

// Text writes s followed by a newline. If viper's "output" flag is set, it
// writes to that file; otherwise it prints to stdout.
func Text(osfs fs.FileSystem, s string) error {
	s = strings.TrimSuffix(s, "\n") + "\n"
	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, []byte(s), 0644)
	}
	fmt.Print(s)
	return nil
}
