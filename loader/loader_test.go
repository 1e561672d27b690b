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
package loader_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/internal/mapfs"
	"bennypowers.dev/nativeconf/loader"
	"bennypowers.dev/nativeconf/resolve"
	"bennypowers.dev/nativeconf/testutil"
)

func resolveFixture(t *testing.T) (*config.ProjectConfig, *testutil.Logger) {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "loader/app", "/project")
	logger := &testutil.Logger{}
	cfg, err := loader.New(mfs, logger).Resolve("/project")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return cfg, logger
}

func dependency(t *testing.T, cfg *config.ProjectConfig, name string) config.Dependency {
	t.Helper()
	dep, ok := cfg.Dependencies.Get(name)
	if !ok {
		t.Fatalf("dependency %s missing; have %v", name, cfg.Dependencies.Names())
	}
	return dep
}

func TestResolveDependencies(t *testing.T) {
	cfg, logger := resolveFixture(t)

	want := []string{"react-native", "react-native-foo", "react-native-bar", "react-native-windows", "dev-only"}
	if !slices.Equal(cfg.Dependencies.Names(), want) {
		t.Errorf("Dependencies = %v, want %v", cfg.Dependencies.Names(), want)
	}
	if !logger.HasWarning("not-installed") {
		t.Errorf("warnings = %v, want one about not-installed", logger.Warnings())
	}

	foo := dependency(t, cfg, "react-native-foo")
	if foo.Root != "/project/node_modules/react-native-foo" {
		t.Errorf("foo.Root = %q", foo.Root)
	}
	if foo.IOS == nil || foo.IOS.Podspec != "RNFoo.podspec" {
		t.Errorf("foo.IOS = %+v", foo.IOS)
	}
	if foo.Android == nil {
		t.Fatal("foo.Android = nil")
	}
	if foo.Android.PackageImportPath != "import com.foo.FooPackage;" {
		t.Errorf("foo import = %q", foo.Android.PackageImportPath)
	}
	if foo.Android.PackageInstance != "new FooPackage()" {
		t.Errorf("foo instance = %q", foo.Android.PackageInstance)
	}

	bar := dependency(t, cfg, "react-native-bar")
	if bar.IOS != nil {
		t.Errorf("bar.IOS = %+v, want disabled", bar.IOS)
	}
	if bar.Android == nil || bar.Android.PackageImportPath != "import com.bar.BarPackage;" {
		t.Errorf("bar.Android = %+v", bar.Android)
	}
	if !slices.Equal(bar.Assets, []string{"./fonts"}) {
		t.Errorf("bar.Assets = %v", bar.Assets)
	}

	for _, name := range []string{"react-native-windows", "dev-only"} {
		dep := dependency(t, cfg, name)
		if dep.Android != nil || dep.IOS != nil {
			t.Errorf("%s platforms = %+v %+v, want nil", name, dep.IOS, dep.Android)
		}
	}
}

func TestResolveOverrideKeepsInferredSiblings(t *testing.T) {
	cfg, _ := resolveFixture(t)
	foo := dependency(t, cfg, "react-native-foo")

	if foo.IOS.PodspecPath != "./custom/RNFoo.podspec" {
		t.Errorf("PodspecPath = %q, want the project override", foo.IOS.PodspecPath)
	}
	if foo.IOS.SourceDir != "/project/node_modules/react-native-foo" {
		t.Errorf("SourceDir = %q, want the inferred value", foo.IOS.SourceDir)
	}
}

func TestResolveTopLevel(t *testing.T) {
	cfg, _ := resolveFixture(t)

	if cfg.Root != "/project" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.ReactNativePath != "/project/node_modules/react-native" {
		t.Errorf("ReactNativePath = %q", cfg.ReactNativePath)
	}

	wantCommands := []string{
		"./scripts/cmd.js",
		"/project/node_modules/react-native-foo/command-foo.js",
		"/project/node_modules/react-native-bar/command-bar.js",
		"/project/node_modules/react-native-windows/plugin.js",
	}
	if !slices.Equal(cfg.Commands, wantCommands) {
		t.Errorf("Commands = %v, want %v", cfg.Commands, wantCommands)
	}
	if cfg.Platforms["windows"] != "/project/node_modules/react-native-windows/platform.js" {
		t.Errorf("Platforms = %v", cfg.Platforms)
	}
	if !slices.Equal(cfg.Haste.Platforms, []string{"windows"}) {
		t.Errorf("Haste.Platforms = %v", cfg.Haste.Platforms)
	}
	if !slices.Equal(cfg.Haste.ProvidesModuleNodeModules, []string{"react-native-windows"}) {
		t.Errorf("Haste.ProvidesModuleNodeModules = %v", cfg.Haste.ProvidesModuleNodeModules)
	}
}

func TestResolveProjectSettings(t *testing.T) {
	cfg, _ := resolveFixture(t)

	iosCfg := cfg.Project.IOS
	if iosCfg == nil {
		t.Fatal("Project.IOS = nil")
	}
	if iosCfg.SourceDir != "/project/ios" || iosCfg.PodfilePath != "/project/ios/Podfile" {
		t.Errorf("Project.IOS = %+v", iosCfg)
	}
	if iosCfg.ProjectPath != "/project/ios/App.xcodeproj" {
		t.Errorf("ProjectPath = %q", iosCfg.ProjectPath)
	}

	androidCfg := cfg.Project.Android
	if androidCfg == nil {
		t.Fatal("Project.Android = nil")
	}
	if androidCfg.SourceDir != "/project/android/app" || androidCfg.AppName != "app" {
		t.Errorf("Project.Android = %+v", androidCfg)
	}
	if androidCfg.PackageName != "com.app" {
		t.Errorf("PackageName = %q", androidCfg.PackageName)
	}
}

func TestResolveIdempotent(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "loader/app", "/project")
	l := loader.New(mfs, nil)

	var outputs [][]byte
	for range 3 {
		cfg, err := l.Resolve("/project")
		if err != nil {
			t.Fatal(err)
		}
		data, err := json.Marshal(cfg)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Errorf("run %d differs from run 0", i)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		mfs := mapfs.New()
		mfs.AddDir("/project", 0755)
		_, err := loader.New(mfs, nil).Resolve("/project")
		if !errors.Is(err, resolve.ErrNoManifest) {
			t.Fatalf("Resolve() error = %v, want ErrNoManifest", err)
		}
	})

	t.Run("malformed manifest", func(t *testing.T) {
		mfs := mapfs.New()
		mfs.AddFile("/project/package.json", `{"dependencies": {`, 0644)
		_, err := loader.New(mfs, nil).Resolve("/project")
		if !fs.IsParseError(err) {
			t.Fatalf("Resolve() error = %v, want ParseError", err)
		}
	})

	t.Run("malformed dependency", func(t *testing.T) {
		mfs := mapfs.New()
		mfs.AddFile("/project/package.json", `{"dependencies": {"foo": "1"}}`, 0644)
		mfs.AddFile("/project/node_modules/foo/package.json", `not json`, 0644)
		_, err := loader.New(mfs, nil).Resolve("/project")
		if !fs.IsParseError(err) {
			t.Fatalf("Resolve() error = %v, want ParseError", err)
		}
	})
}

func TestResolveAliasedOverride(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/project/package.json": `{
			"dependencies": {"alias": "npm:real@1"},
			"react-native": {"dependencies": {"alias": {"platforms": {"ios": null}}}}
		}`,
		"/project/node_modules/alias/package.json": `{"name": "real"}`,
		"/project/node_modules/alias/Real.podspec": ``,
	})

	cfg, err := loader.New(mfs, nil).Resolve("/project")
	if err != nil {
		t.Fatal(err)
	}
	dep, ok := cfg.Dependencies.Get("real")
	if !ok {
		t.Fatalf("Dependencies = %v", cfg.Dependencies.Names())
	}
	if dep.IOS != nil {
		t.Errorf("IOS = %+v, want disabled by the override", dep.IOS)
	}
}
