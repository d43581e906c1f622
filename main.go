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

// Command aliaslink resolves path-aliased JavaScript imports to the files
// they point at.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/aliaslink/cmd/annotate"
	"bennypowers.dev/aliaslink/cmd/serve"
	"bennypowers.dev/aliaslink/cmd/version"
	"bennypowers.dev/aliaslink/cmd/watch"
	"bennypowers.dev/aliaslink/settings"
)

var (
	cpuprofile     string
	cpuprofileFile *os.File
	rootCmd        = &cobra.Command{
		Use:   "aliaslink",
		Short: "Resolve path-aliased imports to files",
		Long: `aliaslink resolves import specifiers written against tsconfig.json
compilerOptions.paths aliases to the files they point at, and reports the
hover text and link ranges an editor would show for them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				cpuprofileFile = f
				if err := pprof.StartCPUProfile(f); err != nil {
					closeErr := f.Close()
					return errors.Join(
						fmt.Errorf("could not start CPU profile: %w", err),
						closeErr,
					)
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofileFile != nil {
				pprof.StopCPUProfile()
				if err := cpuprofileFile.Close(); err != nil {
					return fmt.Errorf("closing CPU profile: %w", err)
				}
			}
			return nil
		},
	}
)

func init() {
	// Root flags (persistent across all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("root", "r", "", "Workspace root (default: nearest ancestor with node_modules or .git)")
	flags.String("config", "", "Settings file (default: .aliaslink.{yaml,json,toml} in the workspace root)")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "Write CPU profile to file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("tsconfig", "", "Path of the alias config, overriding the default search")
	flags.Bool("active-change", false, "Re-resolve on every document change")
	flags.StringSlice("runner", nil, "Language identifiers to resolve (default: javascript)")
	flags.StringSlice("extensions", nil, "Extensions probed for extensionless imports (default: .vue,.js,.ts)")
	flags.String("matcher", "", "Import matcher (pattern, syntax)")

	_ = viper.BindPFlag("root", flags.Lookup("root"))
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag(settings.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(settings.KeyTSConfigPath, flags.Lookup("tsconfig"))
	_ = viper.BindPFlag(settings.KeyActiveChange, flags.Lookup("active-change"))
	_ = viper.BindPFlag(settings.KeyRunner, flags.Lookup("runner"))
	_ = viper.BindPFlag(settings.KeyExtensions, flags.Lookup("extensions"))
	_ = viper.BindPFlag(settings.KeyMatcher, flags.Lookup("matcher"))

	// Add commands
	rootCmd.AddCommand(annotate.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
