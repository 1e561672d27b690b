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
package resolve

import (
	"path/filepath"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/packagejson"
)

// Package is one installed package visited by the walker. It is built once
// and not modified after it is added to a Graph.
type Package struct {
	// Name is the name the package's own manifest declares.
	Name string
	// RequestedName is the name the project depends on it by.
	RequestedName string
	// Root is the real (symlink-free) package directory.
	Root string

	ManifestPath string
	Manifest     *packagejson.PackageJSON

	// Declared is the configuration block from the manifest, already
	// upgraded when Legacy is true.
	Declared config.PackageConfig
	Legacy   bool

	// Config is the dependency configuration built from Declared and
	// inference.
	Config config.Dependency
}

// Contribution returns what the package feeds into the merge, with command
// and platform paths resolved against its root.
func (p *Package) Contribution() config.Contribution {
	c := config.Contribution{
		Dependency: p.Config.Clone(),
		Haste:      p.Declared.Haste,
	}
	for _, cmd := range p.Declared.Commands {
		c.Commands = append(c.Commands, joinRoot(p.Root, cmd))
	}
	if len(p.Declared.Platforms) > 0 {
		c.Platforms = make(map[string]string, len(p.Declared.Platforms))
		for name, handler := range p.Declared.Platforms {
			c.Platforms[name] = joinRoot(p.Root, handler)
		}
	}
	return c
}

func joinRoot(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Graph is the set of visited packages in traversal order, keyed by
// manifest-declared name. The walker fills it from a single goroutine.
type Graph struct {
	// order holds package names in traversal order
	order []string

	// packages maps package name -> package
	packages map[string]*Package

	// roots maps real package root -> package name
	roots map[string]string
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		packages: make(map[string]*Package),
		roots:    make(map[string]string),
	}
}

// AddPackage appends pkg unless a package with the same name or root is
// already present. It reports whether pkg was added.
func (g *Graph) AddPackage(pkg *Package) bool {
	if _, exists := g.packages[pkg.Name]; exists {
		return false
	}
	if _, exists := g.roots[pkg.Root]; exists {
		return false
	}
	g.order = append(g.order, pkg.Name)
	g.packages[pkg.Name] = pkg
	g.roots[pkg.Root] = pkg.Name
	return true
}

// Package returns the package called name, or nil.
func (g *Graph) Package(name string) *Package {
	return g.packages[name]
}

// Packages returns the packages in traversal order.
func (g *Graph) Packages() []*Package {
	result := make([]*Package, 0, len(g.order))
	for _, name := range g.order {
		result = append(result, g.packages[name])
	}
	return result
}

// Contributions returns every package's contribution in traversal order.
func (g *Graph) Contributions() []config.Contribution {
	packages := g.Packages()
	result := make([]config.Contribution, 0, len(packages))
	for _, pkg := range packages {
		result = append(result, pkg.Contribution())
	}
	return result
}
