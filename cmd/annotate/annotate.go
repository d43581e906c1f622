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

// Package annotate provides the annotate command for aliaslink.
package annotate

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bennypowers.dev/aliaslink/internal/cli"
	"bennypowers.dev/aliaslink/internal/output"
)

// Cmd is the annotate cobra command that resolves the aliased imports of
// source files and prints the hover and link annotations an editor would
// show for them.
var Cmd = &cobra.Command{
	Use:   "annotate [file...]",
	Short: "Resolve aliased imports in source files",
	Long: `Resolve the path-aliased imports of source files against tsconfig.json
(or jsconfig.json) compilerOptions.paths and print where each one points.

Relative imports and imports matching no alias are skipped. An import whose
target file does not exist is still printed, marked missing.`,
	Example: `  # Annotate a single file
  aliaslink annotate src/main.js

  # Annotate files matching a glob pattern
  aliaslink annotate --glob "src/**/*.js"

  # Treat TypeScript files as JavaScript and emit NDJSON
  aliaslink annotate --glob "src/**/*.ts" --language javascript --format ndjson

  # Skip generated code
  aliaslink annotate --glob "src/**/*.js" --exclude "dist/" --exclude "**/*.min.js"

  # Parallel processing with custom worker count
  aliaslink annotate --glob "packages/**/*.js" -j 8`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", output.FormatText, "Output format (text, json, ndjson)")
	Cmd.Flags().String("glob", "", "Glob pattern to match source files (e.g., \"src/**/*.js\")")
	Cmd.Flags().StringSlice("exclude", nil, "Patterns of files to skip, relative to the workspace root (e.g., \"**/node_modules/\")")
	Cmd.Flags().String("language", "", "Language identifier for every file (default: derived from the extension)")
	Cmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers (default: number of CPUs)")
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup()
	if err != nil {
		return err
	}

	globPattern, _ := cmd.Flags().GetString("glob")
	files, err := collectFiles(args, globPattern)
	if err != nil {
		return err
	}
	excludes, _ := cmd.Flags().GetStringSlice("exclude")
	ex, err := newExcluder(env.Root, excludes)
	if err != nil {
		return err
	}
	files = ex.filter(files)
	if len(files) == 0 {
		return fmt.Errorf("no files to annotate: provide file arguments or use --glob")
	}

	format, _ := cmd.Flags().GetString("format")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}
	language, _ := cmd.Flags().GetString("language")
	jobs, _ := cmd.Flags().GetInt("jobs")

	results, failed := annotateAll(cmd.Context(), env, files, language, jobs)
	if err := output.Results(env.FS, results, format); err != nil {
		return err
	}
	if failed == len(files) {
		return fmt.Errorf("all %d files failed to annotate", failed)
	}
	return nil
}

// collectFiles gathers files from args and the glob pattern, deduplicating
// by absolute path.
func collectFiles(args []string, globPattern string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) error {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", p, err)
		}
		if _, exists := seen[absPath]; !exists {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
		return nil
	}

	for _, arg := range args {
		if err := add(arg); err != nil {
			return nil, err
		}
	}
	if globPattern != "" {
		matches, err := doublestar.FilepathGlob(globPattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		for _, match := range matches {
			if err := add(match); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

// annotateAll runs one pass per file with at most jobs passes in flight.
// Results keep the order of files. Each file gets its own session, so the
// passes share no provider state.
func annotateAll(ctx context.Context, env *cli.Env, files []string, language string, jobs int) ([]output.Result, int) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]output.Result, len(files))
	failures := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Path = file
			doc, err := cli.Open(env.FS, file, language)
			if err != nil {
				env.Reporter.Report(err)
				results[i].Error = err.Error()
				failures[i] = true
				return nil
			}
			ann, err := env.Session(true).SetActive(doc)
			if err != nil {
				results[i].Error = err.Error()
				failures[i] = true
			}
			results[i].Annotations = ann
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	return results, failed
}
