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
package output_test

import (
	"testing"

	"github.com/spf13/viper"

	"bennypowers.dev/nativeconf/internal/mapfs"
	"bennypowers.dev/nativeconf/internal/output"
)

func TestJSONToFile(t *testing.T) {
	viper.Set("output", "/out/config.json")
	t.Cleanup(func() { viper.Set("output", "") })

	mfs := mapfs.New()
	mfs.AddDir("/out", 0755)
	if err := output.JSON(mfs, map[string][]string{"commands": {"a.js"}}); err != nil {
		t.Fatal(err)
	}

	data, err := mfs.ReadFile("/out/config.json")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"commands\": [\n    \"a.js\"\n  ]\n}\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestTextToFile(t *testing.T) {
	viper.Set("output", "/Podfile.native")
	t.Cleanup(func() { viper.Set("output", "") })

	mfs := mapfs.New()
	if err := output.Text(mfs, "pod 'RNFoo', :path => '/a'\n"); err != nil {
		t.Fatal(err)
	}
	data, err := mfs.ReadFile("/Podfile.native")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pod 'RNFoo', :path => '/a'\n" {
		t.Errorf("output = %q", data)
	}
}
