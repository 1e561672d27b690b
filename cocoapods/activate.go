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

// Package cocoapods registers resolved native dependencies with a CocoaPods
// target. The target is passed in explicitly, so activation can run against
// a recording fake as easily as against a Podfile being generated.
package cocoapods

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/resolve"
)

// Target is the CocoaPods target definition pods are added to.
type Target interface {
	// Dependencies returns the names of pods the target already declares.
	Dependencies() []string
	// Pod declares a pod.
	Pod(name string, opts PodOptions)
	// ScriptPhase adds a build script phase.
	ScriptPhase(phase ScriptPhase)
}

// PodOptions are the options of a pod declaration.
type PodOptions struct {
	Path string
}

// ScriptPhase is a script phase in CocoaPods' shape. Options carries any
// other keys the dependency declared, such as input_files.
type ScriptPhase struct {
	Name              string
	Script            string
	ExecutionPosition ExecutionPosition
	Options           map[string]any
}

// UI receives user-facing messages.
type UI interface {
	Puts(message string)
}

// Activator registers native module pods with a target.
type Activator struct {
	fs       fs.FileSystem
	ui       UI
	logger   resolve.Logger
	resolver resolve.Resolver
	rootDir  string
}

// New creates a new Activator. ui and logger may be nil.
func New(fsys fs.FileSystem, ui UI, logger resolve.Logger) *Activator {
	return &Activator{fs: fsys, ui: ui, logger: logger}
}

// WithResolver returns a new Activator that resolves the project at rootDir
// when UseNativeModules is called without dependencies.
func (a *Activator) WithResolver(r resolve.Resolver, rootDir string) *Activator {
	return &Activator{
		fs:       a.fs,
		ui:       a.ui,
		logger:   a.logger,
		resolver: r,
		rootDir:  rootDir,
	}
}

// UseNativeModules activates deps, or the resolved project's dependencies
// when deps is nil.
func (a *Activator) UseNativeModules(target Target, deps *config.DependencyMap) ([]string, error) {
	if deps == nil {
		if a.resolver == nil {
			return nil, errors.New("no dependencies given and no resolver configured")
		}
		cfg, err := a.resolver.Resolve(a.rootDir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", a.rootDir, err)
		}
		deps = &cfg.Dependencies
	}
	return a.Activate(target, *deps)
}

// Activate declares a pod for every dependency with an iOS configuration,
// in dependency order, and adds its script phases. A pod is skipped when the
// target already declares it or one of its subspecs, or when an earlier
// dependency in deps registered the same pod. It returns the registered pod
// names.
func (a *Activator) Activate(target Target, deps config.DependencyMap) ([]string, error) {
	existing := make(map[string]bool)
	for _, name := range target.Dependencies() {
		existing[rootPodName(name)] = true
	}

	var found []string
	registered := make(map[string]string)
	for name, dep := range deps.All() {
		if dep.IOS == nil {
			continue
		}

		podName, err := a.podName(dep)
		if err != nil {
			return nil, fmt.Errorf("pod name for %s: %w", name, err)
		}
		if existing[podName] {
			a.debug("Pod %s is already declared by the target", podName)
			continue
		}
		if first, ok := registered[podName]; ok {
			a.warn("Skipping %s: pod %s was already registered for %s", name, podName, first)
			continue
		}

		phases, err := a.scriptPhases(dep)
		if err != nil {
			return nil, fmt.Errorf("script phases for %s: %w", name, err)
		}

		target.Pod(podName, PodOptions{Path: dep.Root})
		for _, phase := range phases {
			target.ScriptPhase(phase)
		}
		registered[podName] = name
		found = append(found, podName)
	}

	if len(found) > 0 && a.ui != nil {
		a.ui.Puts(DetectedMessage(found))
	}
	return found, nil
}

// DetectedMessage reports registered pods, e.g.
// "Detected native module pods for a, and b".
func DetectedMessage(pods []string) string {
	names := slices.Sorted(slices.Values(pods))
	return fmt.Sprintf("Detected native module %s for %s", pluralize("pod", len(names)), toSentence(names))
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// toSentence joins words as "a", "a, and b", or "a, b, and c".
func toSentence(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + ", and " + words[len(words)-1]
	}
}

// rootPodName strips a subspec path: "Foo/Core" is "Foo".
func rootPodName(name string) string {
	root, _, _ := strings.Cut(name, "/")
	return root
}

// podName reads the pod name from the dependency's podspec, falling back to
// the podspec file name when it cannot be read. A malformed JSON podspec is
// an *fs.ParseError.
func (a *Activator) podName(dep config.Dependency) (string, error) {
	path := filepath.Join(dep.Root, dep.IOS.Podspec)
	if dep.IOS.PodspecPath != "" {
		path = dep.IOS.PodspecPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(dep.Root, path)
		}
	}
	name, err := ReadPodName(a.fs, path)
	if fs.IsParseError(err) {
		return "", err
	}
	if err != nil {
		a.debug("Reading pod name from %s: %v", path, err)
		return podNameFromFile(dep.IOS.Podspec), nil
	}
	return name, nil
}

// scriptPhases converts the dependency's script phases. A path is read
// relative to the dependency root and replaces the script.
func (a *Activator) scriptPhases(dep config.Dependency) ([]ScriptPhase, error) {
	var phases []ScriptPhase
	for _, p := range dep.IOS.ScriptPhases {
		position, err := ParseExecutionPosition(p.ExecutionPosition)
		if err != nil {
			return nil, err
		}
		phase := ScriptPhase{
			Name:              p.Name,
			Script:            p.Script,
			ExecutionPosition: position,
			Options:           maps.Clone(p.Options),
		}
		if p.Path != "" {
			path := p.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(dep.Root, path)
			}
			data, err := a.fs.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading script %s: %w", path, err)
			}
			phase.Script = string(data)
		}
		phases = append(phases, phase)
	}
	return phases, nil
}

func (a *Activator) warn(format string, args ...any) {
	if a.logger != nil {
		a.logger.Warning(format, args...)
	}
}

func (a *Activator) debug(format string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(format, args...)
	}
}
