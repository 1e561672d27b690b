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

// Package config provides the config command for nativeconf.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/nativeconf/fs"
	"bennypowers.dev/nativeconf/internal/logging"
	"bennypowers.dev/nativeconf/internal/output"
	"bennypowers.dev/nativeconf/loader"
	"bennypowers.dev/nativeconf/resolve"
)

// Cmd is the config cobra command that prints the resolved project configuration.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved native module configuration",
	Long: `Resolve the project's native module configuration and print it as JSON.

Dependencies are read from package.json and resolved through node_modules.
Each package's "react-native" config (or legacy "rnpm" section) is merged with
what can be inferred from its ios and android directories.`,
	Example: `  # Resolve the project in the current directory
  nativeconf config

  # Resolve another project and write the result to a file
  nativeconf config --package ./apps/mobile --output config.json

  # Include packages that are not in dependencies or devDependencies
  nativeconf config --include-package react-native-foo

  # Print only the dependency map
  nativeconf config --dependencies`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringArray("include-package", nil, "Additional packages to resolve (can be repeated)")
	Cmd.Flags().Int("concurrency", resolve.DefaultConcurrency, "Number of packages to inspect in parallel")
	Cmd.Flags().Bool("dependencies", false, "Print only the dependency map")

	_ = viper.BindPFlag("include-package", Cmd.Flags().Lookup("include-package"))
	_ = viper.BindPFlag("concurrency", Cmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("dependencies", Cmd.Flags().Lookup("dependencies"))
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	absRoot, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	logger := logging.New(os.Stderr, viper.GetBool("verbose"))
	l := loader.New(osfs, logger).WithConcurrency(viper.GetInt("concurrency"))
	if packages := viper.GetStringSlice("include-package"); len(packages) > 0 {
		l = l.WithPackages(packages)
	}

	cfg, err := l.Resolve(absRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve: %w", err)
	}

	if viper.GetBool("dependencies") {
		return output.JSON(osfs, cfg.Dependencies)
	}
	return output.JSON(osfs, cfg)
}
