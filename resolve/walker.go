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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/packagejson"
)

// DefaultConcurrency bounds how many packages are inspected at once.
const DefaultConcurrency = 10

// Walker visits the packages a project depends on and builds their
// configuration.
type Walker struct {
	fs                 fs.FileSystem
	logger             Logger
	additionalPackages []string
	concurrency        int
}

// NewWalker creates a new Walker.
func NewWalker(fsys fs.FileSystem, logger Logger) *Walker {
	return &Walker{
		fs:          fsys,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// WithPackages returns a new Walker that also visits packages beyond those
// listed in the project's manifest.
func (w *Walker) WithPackages(packages []string) *Walker {
	return &Walker{
		fs:                 w.fs,
		logger:             w.logger,
		additionalPackages: packages,
		concurrency:        w.concurrency,
	}
}

// WithConcurrency returns a new Walker that inspects at most n packages at
// once. Values below 1 mean one at a time.
func (w *Walker) WithConcurrency(n int) *Walker {
	return &Walker{
		fs:                 w.fs,
		logger:             w.logger,
		additionalPackages: w.additionalPackages,
		concurrency:        max(n, 1),
	}
}

// request is one dependency to visit: a name and, for explicitly rooted
// overrides, the directory it lives in.
type request struct {
	name string
	root string
}

// visit is the outcome of inspecting one resolved root.
type visit struct {
	pkg *Package
	err error
}

// Walk visits every dependency of the project at projectRoot. Names come
// from the manifest's dependencies and devDependencies, then from
// additional packages and explicitly rooted overrides in user.
//
// Unresolvable names and per-package failures are logged and skipped.
// Malformed input (an *fs.ParseError) aborts the walk.
func (w *Walker) Walk(projectRoot string, project *packagejson.PackageJSON, user config.ProjectUserConfig) (*Graph, error) {
	roots := w.resolveRoots(projectRoot, w.requests(projectRoot, project, user))

	visits := make([]visit, len(roots))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(w.concurrency)
	for i, req := range roots {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			pkg, err := w.inspect(req)
			visits[i] = visit{pkg: pkg, err: err}
			if fs.IsParseError(err) {
				return fmt.Errorf("dependency %s: %w", req.name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := NewGraph()
	for i, v := range visits {
		if v.err != nil {
			w.warn("Skipping dependency %s: %v", roots[i].name, v.err)
			continue
		}
		if existing := graph.Package(v.pkg.Name); existing != nil {
			w.warn("Skipping %s at %s: package %s is already provided by %s",
				roots[i].name, v.pkg.Root, v.pkg.Name, existing.Root)
			continue
		}
		graph.AddPackage(v.pkg)
		w.debug("Visited %s at %s", v.pkg.Name, v.pkg.Root)
	}
	return graph, nil
}

// requests lists the dependencies to visit in order. An explicit root
// declared in user replaces module resolution for that name.
func (w *Walker) requests(projectRoot string, project *packagejson.PackageJSON, user config.ProjectUserConfig) []request {
	explicit := make(map[string]string)
	for _, r := range user.ExplicitRoots(projectRoot) {
		explicit[r.Name] = r.Root
	}

	var result []request
	seen := make(map[string]bool)
	add := func(name, root string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		result = append(result, request{name: name, root: root})
	}

	for _, name := range project.DependencyNames() {
		add(name, explicit[name])
	}
	for _, spec := range w.additionalPackages {
		name := packagejson.PackageName(spec)
		add(name, explicit[name])
	}
	for _, r := range user.ExplicitRoots(projectRoot) {
		add(r.Name, r.Root)
	}
	return result
}

// resolveRoots turns requests into real package roots, dropping names that
// cannot be resolved and roots that were already reached under another name.
func (w *Walker) resolveRoots(projectRoot string, requests []request) []request {
	var result []request
	seen := make(map[string]string)
	for _, req := range requests {
		root := req.root
		if root == "" {
			candidates := FindNodeModule(w.fs, projectRoot, req.name)
			switch len(candidates) {
			case 0:
				w.warn("Dependency %s not found in node_modules", req.name)
				continue
			case 1:
			default:
				w.warn("Dependency %s resolves to %d locations (%s); using %s",
					req.name, len(candidates), strings.Join(candidates, ", "), candidates[0])
			}
			root = candidates[0]
		}

		realRoot, err := w.fs.RealPath(root)
		if err != nil {
			w.warn("Dependency %s: cannot resolve %s: %v", req.name, root, err)
			continue
		}
		if first, ok := seen[realRoot]; ok {
			w.debug("Dependency %s resolves to %s, already visited as %s", req.name, realRoot, first)
			continue
		}
		seen[realRoot] = req.name
		result = append(result, request{name: req.name, root: realRoot})
	}
	return result
}

// inspect loads the manifest at req.root and builds the package's
// configuration.
func (w *Walker) inspect(req request) (*Package, error) {
	manifestPath := filepath.Join(req.root, "package.json")
	manifest, err := packagejson.ParseFile(w.fs, manifestPath)
	if err != nil {
		return nil, err
	}

	declared, legacy, err := config.ReadPackageConfig(manifest, manifestPath)
	if err != nil {
		return nil, err
	}
	if legacy {
		w.debug("Package %s uses the legacy rnpm configuration", req.name)
	}

	name := manifest.Name
	if name == "" {
		name = req.name
	}

	dep, err := config.BuildDependency(w.fs, name, req.root, declared.Dependency)
	if err != nil {
		return nil, err
	}

	return &Package{
		Name:          name,
		RequestedName: req.name,
		Root:          req.root,
		ManifestPath:  manifestPath,
		Manifest:      manifest,
		Declared:      declared,
		Legacy:        legacy,
		Config:        dep,
	}, nil
}

func (w *Walker) warn(format string, args ...any) {
	if w.logger != nil {
		w.logger.Warning(format, args...)
	}
}

func (w *Walker) debug(format string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(format, args...)
	}
}
