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

// Package loader assembles the resolved configuration of a project: it reads
// the project manifest, walks its dependencies, infers the app's own native
// project settings, and merges everything.
package loader

import (
	"fmt"
	"path/filepath"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/packagejson"
	"bennypowers.dev/nativeconf/resolve"
)

// Loader resolves project configuration from the filesystem.
type Loader struct {
	fs          fs.FileSystem
	logger      resolve.Logger
	packages    []string
	concurrency int
}

var _ resolve.Resolver = (*Loader)(nil)

// New creates a new Loader.
func New(fsys fs.FileSystem, logger resolve.Logger) *Loader {
	return &Loader{
		fs:          fsys,
		logger:      logger,
		concurrency: resolve.DefaultConcurrency,
	}
}

// WithPackages returns a new Loader that also visits the named packages.
func (l *Loader) WithPackages(packages []string) *Loader {
	return &Loader{
		fs:          l.fs,
		logger:      l.logger,
		packages:    packages,
		concurrency: l.concurrency,
	}
}

// WithConcurrency returns a new Loader that inspects at most n packages at
// once.
func (l *Loader) WithConcurrency(n int) *Loader {
	return &Loader{
		fs:          l.fs,
		logger:      l.logger,
		packages:    l.packages,
		concurrency: n,
	}
}

// Resolve resolves the project rooted at rootDir. A missing or malformed
// project manifest is an error, as is malformed input in any dependency.
func (l *Loader) Resolve(rootDir string) (*config.ProjectConfig, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		absRoot = rootDir
	}
	rootDir = absRoot

	manifestPath := filepath.Join(rootDir, "package.json")
	if !l.fs.Exists(manifestPath) {
		return nil, fmt.Errorf("%w in %s", resolve.ErrNoManifest, rootDir)
	}
	project, err := packagejson.ParseFile(l.fs, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading project manifest: %w", err)
	}

	user, err := config.ReadProjectConfig(project, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	graph, err := resolve.NewWalker(l.fs, l.logger).
		WithPackages(l.packages).
		WithConcurrency(l.concurrency).
		Walk(rootDir, project, user)
	if err != nil {
		return nil, err
	}

	defaults := config.Defaults(rootDir)
	defaults.Project, err = InferProjectSettings(l.fs, rootDir)
	if err != nil {
		return nil, fmt.Errorf("reading project settings: %w", err)
	}

	return config.Merge(defaults, graph.Contributions(), overridesFor(graph, user), user), nil
}

// overridesFor keys the project's dependency overrides by manifest name. An
// override written under the requested name of an aliased package applies to
// that package.
func overridesFor(graph *resolve.Graph, user config.ProjectUserConfig) map[string]config.DependencyUserConfig {
	result := make(map[string]config.DependencyUserConfig, len(user.Dependencies))
	for _, pkg := range graph.Packages() {
		if o, ok := user.Dependencies[pkg.Name]; ok {
			result[pkg.Name] = o
		} else if o, ok := user.Dependencies[pkg.RequestedName]; ok {
			result[pkg.Name] = o
		}
	}
	return result
}
