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
package config_test

import (
	"encoding/json"
	"slices"
	"testing"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/packagejson"
	"bennypowers.dev/nativeconf/testutil"
)

func decodeLegacy(t *testing.T, src string) config.LegacyConfig {
	t.Helper()
	var legacy config.LegacyConfig
	if err := json.Unmarshal([]byte(src), &legacy); err != nil {
		t.Fatalf("decoding legacy config: %v", err)
	}
	return legacy
}

func TestTransformLegacyRoundTrip(t *testing.T) {
	legacy := decodeLegacy(t, `{
		"ios": {"project": "ios/Windows.xcodeproj", "sharedLibraries": ["libz"]},
		"android": {"packageName": "com.windows", "sourceDir": "./droid"},
		"haste": {
			"providesModuleNodeModules": ["react-native-windows"],
			"platforms": ["windows", "winrt"]
		},
		"platform": "./local-cli/platform.js",
		"plugin": "./local-cli/plugin.js"
	}`)

	got := config.TransformLegacy(legacy, "react-native-windows")

	if got.Haste == nil {
		t.Fatal("Haste = nil")
	}
	if !slices.Equal(got.Haste.Platforms, []string{"windows", "winrt"}) {
		t.Errorf("Haste.Platforms = %v", got.Haste.Platforms)
	}
	if !slices.Equal(got.Haste.ProvidesModuleNodeModules, []string{"react-native-windows"}) {
		t.Errorf("Haste.ProvidesModuleNodeModules = %v", got.Haste.ProvidesModuleNodeModules)
	}
	for _, name := range []string{"windows", "winrt"} {
		if got.Platforms[name] != "./local-cli/platform.js" {
			t.Errorf("Platforms[%q] = %q", name, got.Platforms[name])
		}
	}
	if len(got.Platforms) != 2 {
		t.Errorf("Platforms = %v, want exactly the haste platforms", got.Platforms)
	}
	if !slices.Equal(got.Commands, []string{"./local-cli/plugin.js"}) {
		t.Errorf("Commands = %v", got.Commands)
	}

	iosCfg := got.Dependency.Platforms.IOS
	if iosCfg == nil || iosCfg.Project == nil || *iosCfg.Project != "ios/Windows.xcodeproj" {
		t.Errorf("ios project not preserved: %+v", iosCfg)
	}
	if iosCfg != nil && iosCfg.Podspec != nil {
		t.Errorf("Podspec = %q, want unset for an Xcode project", *iosCfg.Podspec)
	}
	if iosCfg != nil && !slices.Equal(iosCfg.SharedLibraries, []string{"libz"}) {
		t.Errorf("SharedLibraries = %v", iosCfg.SharedLibraries)
	}

	androidCfg := got.Dependency.Platforms.Android
	if androidCfg == nil || androidCfg.PackageName == nil || *androidCfg.PackageName != "com.windows" {
		t.Errorf("android packageName not preserved: %+v", androidCfg)
	}
	if androidCfg != nil && (androidCfg.SourceDir == nil || *androidCfg.SourceDir != "./droid") {
		t.Errorf("android sourceDir not preserved: %+v", androidCfg)
	}
}

func TestTransformLegacyPodspecProject(t *testing.T) {
	legacy := decodeLegacy(t, `{"ios": {"project": "ios/Foo.podspec"}}`)
	got := config.TransformLegacy(legacy, "foo")

	iosCfg := got.Dependency.Platforms.IOS
	if iosCfg == nil || iosCfg.Podspec == nil {
		t.Fatalf("ios = %+v, want podspec", iosCfg)
	}
	if *iosCfg.Podspec != "Foo" {
		t.Errorf("Podspec = %q, want %q", *iosCfg.Podspec, "Foo")
	}
	if iosCfg.PodspecPath == nil || *iosCfg.PodspecPath != "ios/Foo.podspec" {
		t.Errorf("PodspecPath = %v", iosCfg.PodspecPath)
	}
	if iosCfg.Project != nil {
		t.Errorf("Project = %q, want unset", *iosCfg.Project)
	}
}

func TestTransformLegacyPlatformWithoutHaste(t *testing.T) {
	legacy := decodeLegacy(t, `{"platform": "./platform.js", "plugin": ["./a.js", "./b.js"]}`)
	got := config.TransformLegacy(legacy, "my-platform")

	if got.Platforms["my-platform"] != "./platform.js" {
		t.Errorf("Platforms = %v", got.Platforms)
	}
	if !slices.Equal(got.Commands, []string{"./a.js", "./b.js"}) {
		t.Errorf("Commands = %v", got.Commands)
	}
	if got.Haste != nil {
		t.Errorf("Haste = %+v, want nil", got.Haste)
	}
}

func TestTransformLegacyLinkFields(t *testing.T) {
	legacy := decodeLegacy(t, `{
		"assets": ["./fonts"],
		"commands": {"prelink": "node pre.js", "postlink": "node post.js"},
		"params": [{"type": "input", "name": "apiKey", "message": "API key?"}]
	}`)
	got := config.TransformLegacy(legacy, "foo")

	if !slices.Equal(got.Dependency.Assets, []string{"./fonts"}) {
		t.Errorf("Assets = %v", got.Dependency.Assets)
	}
	if got.Dependency.Hooks["prelink"] != "node pre.js" || got.Dependency.Hooks["postlink"] != "node post.js" {
		t.Errorf("Hooks = %v", got.Dependency.Hooks)
	}
	if len(got.Dependency.Params) != 1 || got.Dependency.Params[0].Name != "apiKey" {
		t.Errorf("Params = %+v", got.Dependency.Params)
	}
}

func TestTransformLegacyDoesNotAlias(t *testing.T) {
	legacy := decodeLegacy(t, `{"haste": {"platforms": ["windows"]}, "assets": ["a"]}`)
	got := config.TransformLegacy(legacy, "foo")

	got.Haste.Platforms[0] = "changed"
	got.Dependency.Assets[0] = "changed"
	if legacy.Haste.Platforms[0] != "windows" || legacy.Assets[0] != "a" {
		t.Error("TransformLegacy result shares storage with its input")
	}
}

func TestReadPackageConfigLegacyFixture(t *testing.T) {
	data := testutil.LoadFixtureFile(t, "loader/app/node_modules/react-native-windows/package.json")
	pkg, err := packagejson.Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	cfg, legacy, err := config.ReadPackageConfig(pkg, "/app/node_modules/react-native-windows/package.json")
	if err != nil {
		t.Fatal(err)
	}
	if !legacy {
		t.Error("legacy = false, want true")
	}
	if !slices.Equal(cfg.Commands, []string{"./plugin.js"}) {
		t.Errorf("Commands = %v", cfg.Commands)
	}
	if cfg.Platforms["windows"] != "./platform.js" {
		t.Errorf("Platforms = %v", cfg.Platforms)
	}
	if cfg.Haste == nil || !slices.Equal(cfg.Haste.Platforms, []string{"windows"}) {
		t.Errorf("Haste = %+v", cfg.Haste)
	}
}
