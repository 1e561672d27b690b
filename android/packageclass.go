package android

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	tsKotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	ts "github.com/tree-sitter/go-tree-sitter"
	tsJava "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"bennypowers.dev/nativeconf/fs"
)

//go:embed queries/*/*.scm
var queryFiles embed.FS

var (
	// ErrNoPackageClass is returned when no source file declares a package class.
	ErrNoPackageClass = errors.New("no native package class found")
	// ErrAmbiguous is returned when more than one distinct package class is declared.
	ErrAmbiguous = errors.New("more than one native package class found")
)

// packageSupertypes are the supertypes that mark a class as registering
// native modules.
var packageSupertypes = map[string]bool{
	"ReactPackage":      true,
	"TurboReactPackage": true,
	"BaseReactPackage":  true,
}

var sourceIgnore = []string{"**/build/**"}

// grammar pairs a tree-sitter language with a parser pool and its
// reactPackage query, loaded from queries/<name>/ on first use.
type grammar struct {
	name     string
	language *ts.Language
	parsers  sync.Pool

	queryOnce sync.Once
	query     *ts.Query
	queryErr  error
}

func newGrammar(name string, language *ts.Language) *grammar {
	g := &grammar{name: name, language: language}
	g.parsers.New = func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(language); err != nil {
			panic("failed to set " + name + " language: " + err.Error())
		}
		return parser
	}
	return g
}

var (
	javaGrammar   = newGrammar("java", ts.NewLanguage(tsJava.Language()))
	kotlinGrammar = newGrammar("kotlin", ts.NewLanguage(tsKotlin.Language()))
)

func (g *grammar) packageQuery() (*ts.Query, error) {
	g.queryOnce.Do(func() {
		data, err := queryFiles.ReadFile(path.Join("queries", g.name, "reactPackage.scm"))
		if err != nil {
			g.queryErr = fmt.Errorf("failed to read query: %w", err)
			return
		}
		query, qerr := ts.NewQuery(g.language, string(data))
		if qerr != nil {
			g.queryErr = fmt.Errorf("failed to parse %s query reactPackage: %w", g.name, qerr)
			return
		}
		g.query = query
	})
	return g.query, g.queryErr
}

// parse runs the package query over content and calls fn for every match.
func (g *grammar) parse(content []byte, fn func(match *ts.QueryMatch, captureNames []string)) error {
	query, err := g.packageQuery()
	if err != nil {
		return err
	}

	parser := g.parsers.Get().(*ts.Parser)
	defer func() {
		parser.Reset()
		g.parsers.Put(parser)
	}()

	tree := parser.Parse(content, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse %s content", g.name)
	}
	defer tree.Close()

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, tree.RootNode(), content)
	captureNames := query.CaptureNames()
	for {
		match := matches.Next()
		if match == nil {
			return nil
		}
		fn(match, captureNames)
	}
}

// PackageClass is a class that registers a package's native modules.
type PackageClass struct {
	Package string // Source package, e.g. "com.foo"
	Name    string // Simple class name, e.g. "FooPackage"
}

// QualifiedName returns the fully qualified class name.
func (c PackageClass) QualifiedName() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// FindPackageClassName returns the single package class declared below
// sourceDir, or nil when there is none or the choice is ambiguous.
func FindPackageClassName(fsys fs.FileSystem, sourceDir string) *PackageClass {
	class, err := FindPackageClass(fsys, sourceDir)
	if err != nil {
		return nil
	}
	return class
}

// FindPackageClass scans the Java and Kotlin sources below sourceDir. It
// returns ErrNoPackageClass or ErrAmbiguous when there is not exactly one
// distinct candidate.
func FindPackageClass(fsys fs.FileSystem, sourceDir string) (*PackageClass, error) {
	if sourceDir == "" {
		return nil, ErrNoPackageClass
	}
	files, err := fs.Glob(fsys, sourceDir, "**/*.{java,kt}", sourceIgnore...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var found []PackageClass
	for _, file := range files {
		content, err := fsys.ReadFile(filepath.FromSlash(file))
		if err != nil {
			continue
		}
		var classes []PackageClass
		if strings.HasSuffix(file, ".kt") {
			classes, err = kotlinPackageClasses(content)
		} else {
			classes, err = javaPackageClasses(content)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for _, c := range classes {
			if !seen[c.QualifiedName()] {
				seen[c.QualifiedName()] = true
				found = append(found, c)
			}
		}
	}

	switch len(found) {
	case 0:
		return nil, ErrNoPackageClass
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s and %s", ErrAmbiguous, found[0].QualifiedName(), found[1].QualifiedName())
	}
}

// javaPackageClasses extracts package classes from Java source.
func javaPackageClasses(content []byte) ([]PackageClass, error) {
	var pkgName string
	var classes []PackageClass
	err := javaGrammar.parse(content, func(match *ts.QueryMatch, captureNames []string) {
		var className, supertype string
		for _, capture := range match.Captures {
			text := capture.Node.Utf8Text(content)
			switch captureNames[capture.Index] {
			case "package.name":
				pkgName = text
			case "class.name":
				className = text
			case "class.supertype":
				supertype = text
			}
		}
		if className != "" && isPackageSupertype(supertype) {
			classes = append(classes, PackageClass{Name: className})
		}
	})
	if err != nil {
		return nil, err
	}

	for i := range classes {
		classes[i].Package = pkgName
	}
	return classes, nil
}

// kotlinPackageClasses extracts package classes from Kotlin source. The
// query captures whole declarations; names and delegation specifiers are
// read from their children.
func kotlinPackageClasses(content []byte) ([]PackageClass, error) {
	var pkgName string
	var classes []PackageClass
	err := kotlinGrammar.parse(content, func(match *ts.QueryMatch, captureNames []string) {
		for _, capture := range match.Captures {
			node := capture.Node
			switch captureNames[capture.Index] {
			case "package":
				pkgName = kotlinPackageName(&node, content)
			case "class":
				name := kotlinClassName(&node, content)
				if name == "" {
					continue
				}
				for _, supertype := range kotlinSupertypes(&node, content) {
					if isPackageSupertype(supertype) {
						classes = append(classes, PackageClass{Name: name})
						break
					}
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	for i := range classes {
		classes[i].Package = pkgName
	}
	return classes, nil
}

func kotlinPackageName(header *ts.Node, content []byte) string {
	if id := header.NamedChild(0); id != nil {
		return strings.TrimSpace(id.Utf8Text(content))
	}
	text := strings.TrimPrefix(strings.TrimSpace(header.Utf8Text(content)), "package")
	return strings.TrimSuffix(strings.TrimSpace(text), ";")
}

// kotlinClassName returns the declared name, or "" for interfaces.
func kotlinClassName(decl *ts.Node, content []byte) string {
	var name string
	for i := uint(0); i < decl.ChildCount(); i++ {
		child := decl.Child(i)
		switch child.Kind() {
		case "interface":
			return ""
		case "type_identifier", "simple_identifier", "identifier":
			if name == "" {
				name = child.Utf8Text(content)
			}
		}
	}
	if field := decl.ChildByFieldName("name"); field != nil {
		return field.Utf8Text(content)
	}
	return name
}

// kotlinSupertypes returns the text of each delegation specifier, such as
// "ReactPackage" or "TurboReactPackage()".
func kotlinSupertypes(node *ts.Node, content []byte) []string {
	var out []string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "delegation_specifier":
			out = append(out, child.Utf8Text(content))
		case "delegation_specifiers":
			out = append(out, kotlinSupertypes(child, content)...)
		}
	}
	return out
}

// isPackageSupertype strips qualifiers, type arguments, constructor calls
// and delegation clauses before comparing against the known supertypes.
func isPackageSupertype(typeText string) bool {
	t := strings.TrimSpace(typeText)
	if i := strings.IndexAny(t, "<( \t\n"); i >= 0 {
		t = t[:i]
	}
	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}
	return packageSupertypes[strings.TrimSpace(t)]
}
