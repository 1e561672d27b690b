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

// Package pods provides the pods command for nativeconf.
package pods

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/nativeconf/cocoapods"
	"bennypowers.dev/nativeconf/config"
	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/internal/logging"
	"bennypowers.dev/nativeconf/internal/output"
	"bennypowers.dev/nativeconf/loader"
)

// Cmd is the pods cobra command that prints Podfile declarations for native modules.
var Cmd = &cobra.Command{
	Use:   "pods",
	Short: "Print Podfile declarations for native modules",
	Long: `Print the pod and script_phase declarations for every dependency with
an iOS configuration.

Pods the Podfile already declares are skipped; pass them with --existing.`,
	Example: `  # Declarations for the project in the current directory
  nativeconf pods

  # Skip pods the Podfile already declares
  nativeconf pods --existing React-Core,RNFoo

  # Use a configuration previously written by "nativeconf config"
  nativeconf pods --from config.json`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringSlice("existing", nil, "Pods the target already declares")
	Cmd.Flags().String("from", "", "Read dependencies from a config JSON file instead of resolving")

	_ = viper.BindPFlag("existing", Cmd.Flags().Lookup("existing"))
	_ = viper.BindPFlag("from", Cmd.Flags().Lookup("from"))
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	absRoot, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	logger := logging.New(os.Stderr, viper.GetBool("verbose"))
	activator := cocoapods.New(osfs, logger, logger).
		WithResolver(loader.New(osfs, logger), absRoot)

	var deps *config.DependencyMap
	if from := viper.GetString("from"); from != "" {
		deps, err = readDependencies(osfs, from)
		if err != nil {
			return err
		}
	}

	var buf strings.Builder
	target := cocoapods.NewPodfileTarget(&buf, viper.GetStringSlice("existing"))
	if _, err := activator.UseNativeModules(target, deps); err != nil {
		return err
	}
	if err := target.Err(); err != nil {
		return err
	}
	return output.Text(osfs, buf.String())
}

func readDependencies(osfs fs.FileSystem, path string) (*config.DependencyMap, error) {
	data, err := osfs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg struct {
		Dependencies config.DependencyMap `json:"dependencies"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &fs.ParseError{Path: path, Err: err}
	}
	return &cfg.Dependencies, nil
}
