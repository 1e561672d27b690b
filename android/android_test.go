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
package android_test

import (
	"errors"
	"testing"

	"bennypowers.dev/nativeconf/android"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/internal/mapfs"
)

const fooPackageJava = `package com.foo;

import com.facebook.react.ReactPackage;
import java.util.List;

public class FooPackage implements ReactPackage {
    @Override
    public List<NativeModule> createNativeModules(ReactApplicationContext ctx) {
        return null;
    }
}
`

const fooModuleJava = `package com.foo;

public class FooModule extends ReactContextBaseJavaModule {
}
`

func TestFindSourceDir(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "android/app preferred",
			files: map[string]string{"/pkg/android/app/build.gradle": "", "/pkg/android/build.gradle": ""},
			want:  "/pkg/android/app",
		},
		{
			name:  "android with gradle file",
			files: map[string]string{"/pkg/android/build.gradle": ""},
			want:  "/pkg/android",
		},
		{
			name:  "android with kotlin gradle file",
			files: map[string]string{"/pkg/android/build.gradle.kts": ""},
			want:  "/pkg/android",
		},
		{
			name:  "android with only sources",
			files: map[string]string{"/pkg/android/src/main/AndroidManifest.xml": "<manifest/>"},
			want:  "/pkg/android",
		},
		{
			name:  "android dir without module layout",
			files: map[string]string{"/pkg/android/README.md": ""},
			want:  "",
		},
		{
			name:  "no android code",
			files: map[string]string{"/pkg/index.js": ""},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddFiles(tt.files)
			if got := android.FindSourceDir(mfs, "/pkg"); got != tt.want {
				t.Errorf("FindSourceDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindManifest(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/pkg/android/build/intermediates/AndroidManifest.xml": "<manifest/>",
		"/pkg/android/src/debug/AndroidManifest.xml":           "<manifest/>",
		"/pkg/android/src/main/AndroidManifest.xml":            "<manifest/>",
	})

	if got := android.FindManifest(mfs, "/pkg/android"); got != "/pkg/android/src/main/AndroidManifest.xml" {
		t.Errorf("FindManifest() = %q", got)
	}
	if got := android.FindManifest(mfs, "/pkg/missing"); got != "" {
		t.Errorf("FindManifest() on missing dir = %q, want empty", got)
	}
	if got := android.FindManifest(mfs, ""); got != "" {
		t.Errorf("FindManifest() on empty dir = %q, want empty", got)
	}
}

func TestReadManifest(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/ok.xml", `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.foo">
</manifest>`, 0644)
	mfs.AddFile("/m/broken.xml", `<manifest package="com.foo"><application></manifest>`, 0644)

	m, err := android.ReadManifest(mfs, "/m/ok.xml")
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if m.Package != "com.foo" {
		t.Errorf("Package = %q, want com.foo", m.Package)
	}

	_, err = android.ReadManifest(mfs, "/m/broken.xml")
	var pe *fs.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *fs.ParseError, got %v", err)
	}
	if pe.Path != "/m/broken.xml" {
		t.Errorf("ParseError.Path = %q", pe.Path)
	}
}

func TestReadManifestOtherRoot(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/resources.xml", `<resources package="com.not.a.manifest"><string name="app">App</string></resources>`, 0644)

	m, err := android.ReadManifest(mfs, "/m/resources.xml")
	if err != nil {
		t.Fatalf("ReadManifest() error = %v, want a well-formed file to read", err)
	}
	if m.Package != "" {
		t.Errorf("Package = %q, want none from a non-manifest root", m.Package)
	}
}

func TestReadNamespace(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/a/build.gradle", "android {\n    namespace \"com.groovy\"\n}\n", 0644)
	mfs.AddFile("/b/build.gradle.kts", "android {\n    namespace = \"com.kts\"\n}\n", 0644)

	if got := android.ReadNamespace(mfs, "/a"); got != "com.groovy" {
		t.Errorf("ReadNamespace(groovy) = %q", got)
	}
	if got := android.ReadNamespace(mfs, "/b"); got != "com.kts" {
		t.Errorf("ReadNamespace(kts) = %q", got)
	}
	if got := android.ReadNamespace(mfs, "/c"); got != "" {
		t.Errorf("ReadNamespace(missing) = %q", got)
	}
}

func TestFindPackageClassName(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantName  string
		wantQName string
	}{
		{
			name: "java implements ReactPackage",
			files: map[string]string{
				"/pkg/android/src/main/java/com/foo/FooPackage.java": fooPackageJava,
				"/pkg/android/src/main/java/com/foo/FooModule.java":  fooModuleJava,
			},
			wantName:  "FooPackage",
			wantQName: "com.foo.FooPackage",
		},
		{
			name: "java extends TurboReactPackage",
			files: map[string]string{
				"/pkg/android/src/main/java/com/bar/BarPackage.java": `package com.bar;
public class BarPackage extends TurboReactPackage {}
`,
			},
			wantName:  "BarPackage",
			wantQName: "com.bar.BarPackage",
		},
		{
			name: "java fully qualified interface",
			files: map[string]string{
				"/pkg/android/src/main/java/com/q/QPackage.java": `package com.q;
public class QPackage implements Something, com.facebook.react.ReactPackage {}
`,
			},
			wantName:  "QPackage",
			wantQName: "com.q.QPackage",
		},
		{
			name: "kotlin class",
			files: map[string]string{
				"/pkg/android/src/main/java/com/kt/KtPackage.kt": `package com.kt

class KtPackage : ReactPackage {
}
`,
			},
			wantName:  "KtPackage",
			wantQName: "com.kt.KtPackage",
		},
		{
			name: "kotlin class with constructor and base class",
			files: map[string]string{
				"/pkg/android/src/main/java/com/kt/KtPackage.kt": `package com.kt

class KtPackage(private val flag: Boolean) : BaseReactPackage() {
}
`,
			},
			wantName:  "KtPackage",
			wantQName: "com.kt.KtPackage",
		},
		{
			name: "kotlin body-less class before the package class",
			files: map[string]string{
				"/pkg/android/src/main/java/com/kt/KtPackage.kt": `package com.kt

class Options : Serializable
class KtPackage : ReactPackage {}
`,
			},
			wantName:  "KtPackage",
			wantQName: "com.kt.KtPackage",
		},
		{
			name: "kotlin exception class and nested constructor parentheses",
			files: map[string]string{
				"/pkg/android/src/main/java/com/kt/KtPackage.kt": `package com.kt

class KtException(msg: String) : Exception(msg)

class KtPackage(private val onEvent: (Int) -> Unit = {}) : TurboReactPackage() {
}
`,
			},
			wantName:  "KtPackage",
			wantQName: "com.kt.KtPackage",
		},
		{
			name: "kotlin interface is not a package class",
			files: map[string]string{
				"/pkg/android/src/main/java/com/kt/KtPackage.kt": `package com.kt

interface Registry : ReactPackage

class KtPackage : com.facebook.react.ReactPackage {}
`,
			},
			wantName:  "KtPackage",
			wantQName: "com.kt.KtPackage",
		},
		{
			name: "build outputs ignored",
			files: map[string]string{
				"/pkg/android/src/main/java/com/foo/FooPackage.java":       fooPackageJava,
				"/pkg/android/build/generated/com/gen/GenPackage.java": `package com.gen;
public class GenPackage implements ReactPackage {}
`,
			},
			wantName:  "FooPackage",
			wantQName: "com.foo.FooPackage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddFiles(tt.files)
			got := android.FindPackageClassName(mfs, "/pkg/android")
			if got == nil {
				t.Fatal("FindPackageClassName() = nil")
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.QualifiedName() != tt.wantQName {
				t.Errorf("QualifiedName() = %q, want %q", got.QualifiedName(), tt.wantQName)
			}
		})
	}
}

func TestFindPackageClassAbsentAndAmbiguous(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		mfs := mapfs.New()
		mfs.AddFile("/pkg/android/src/main/java/com/foo/FooModule.java", fooModuleJava, 0644)

		_, err := android.FindPackageClass(mfs, "/pkg/android")
		if !errors.Is(err, android.ErrNoPackageClass) {
			t.Errorf("Expected ErrNoPackageClass, got %v", err)
		}
		if android.FindPackageClassName(mfs, "/pkg/android") != nil {
			t.Error("Expected nil class")
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		mfs := mapfs.New()
		mfs.AddFiles(map[string]string{
			"/pkg/android/src/main/java/com/foo/FooPackage.java": fooPackageJava,
			"/pkg/android/src/main/java/com/foo/OtherPackage.java": `package com.foo;
public class OtherPackage implements ReactPackage {}
`,
		})

		_, err := android.FindPackageClass(mfs, "/pkg/android")
		if !errors.Is(err, android.ErrAmbiguous) {
			t.Errorf("Expected ErrAmbiguous, got %v", err)
		}
		if android.FindPackageClassName(mfs, "/pkg/android") != nil {
			t.Error("Expected nil class for ambiguous candidates")
		}
	})

	t.Run("same class matched twice is not ambiguous", func(t *testing.T) {
		mfs := mapfs.New()
		mfs.AddFile("/pkg/android/src/main/java/com/foo/FooPackage.java", `package com.foo;
public class FooPackage extends TurboReactPackage implements ReactPackage {}
`, 0644)

		if got := android.FindPackageClassName(mfs, "/pkg/android"); got == nil || got.Name != "FooPackage" {
			t.Errorf("FindPackageClassName() = %v", got)
		}
	})
}
