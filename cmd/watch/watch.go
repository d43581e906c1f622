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

// Package watch provides the watch command for aliaslink.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/internal/cli"
	"bennypowers.dev/aliaslink/internal/output"
	"bennypowers.dev/aliaslink/resolve"
	"bennypowers.dev/aliaslink/session"
	"bennypowers.dev/aliaslink/tsconfig"
)

// Cmd is the watch cobra command that keeps the annotations of one file up
// to date while it and its config change.
var Cmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-resolve a file's aliased imports as it changes",
	Long: `Resolve the aliased imports of a file, then watch it and re-resolve.

Changes to tsconfig.json, jsconfig.json or the settings file always trigger a
new pass. Changes to the file itself trigger a pass only when activeChange is
enabled (--active-change). Bursts of events are coalesced for --debounce
before a pass runs.`,
	Example: `  # Watch a file, re-resolving on config changes
  aliaslink watch src/main.js

  # Also re-resolve on every save, as NDJSON
  aliaslink watch src/main.js --active-change --format ndjson`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", output.FormatText, "Output format (text, json, ndjson)")
	Cmd.Flags().String("language", "", "Language identifier (default: derived from the extension)")
	Cmd.Flags().Duration("debounce", 100*time.Millisecond, "Quiet period before re-resolving")
}

// trigger is what a coalesced burst of events asks for.
type trigger struct {
	document bool
	config   bool
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup()
	if err != nil {
		return err
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid file path %q: %w", args[0], err)
	}
	format, _ := cmd.Flags().GetString("format")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}
	language, _ := cmd.Flags().GetString("language")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	s := env.Session(true)
	show := func(ann session.Annotations) {
		if err := output.Results(env.FS, []output.Result{{Annotations: ann}}, format); err != nil {
			env.Reporter.Report(err)
		}
	}

	doc, err := cli.Open(env.FS, path, language)
	if err != nil {
		return err
	}
	ann, err := s.SetActive(doc)
	if err == nil {
		show(ann)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := map[string]bool{}
	watch := func() {
		current := env.Settings.Settings()
		var extra []string
		if r, err := current.Resolver(env.FS, env.Logger); err == nil {
			extra = append(extra, r.PackageRoot(path, env.Root))
			extra = append(extra, configDirs(env.FS, r, current.TSConfigPath, path, env.Root)...)
		}
		for _, dir := range watchDirs(path, env.Root, current.TSConfigPath, extra...) {
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				env.Logger.Warning("Cannot watch %s: %v", dir, err)
				continue
			}
			watched[dir] = true
		}
	}
	watch()

	settingsChanged := make(chan struct{}, 1)
	if env.Settings.File() != "" {
		viper.OnConfigChange(func(fsnotify.Event) {
			select {
			case settingsChanged <- struct{}{}:
			default:
			}
		})
		viper.WatchConfig()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	timer := time.NewTimer(debounce)
	timer.Stop()
	var pending trigger

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch classify(event, path) {
			case "document":
				pending.document = true
			case "config":
				pending.config = true
			default:
				continue
			}
			timer.Reset(debounce)

		case <-settingsChanged:
			pending.config = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			env.Logger.Warning("Watch error: %v", err)

		case <-timer.C:
			fire := pending
			pending = trigger{}

			doc, err := cli.Open(env.FS, path, language)
			if err != nil {
				env.Reporter.Report(err)
				continue
			}
			ran := false
			if fire.document {
				ran = env.Settings.Settings().ActiveChange
				ann, err = s.Changed(doc)
			}
			if fire.config {
				ran = true
				ann, err = s.Reconfigure()
				// The extends chain may now reach other directories
				watch()
			}
			if ran && err == nil {
				show(ann)
			}
		}
	}
}

// watchDirs lists the directories whose events can affect the file: its
// own directory, the workspace root, the directory of an explicit config
// path and any extra directories such as the package root or the
// directories of extended configs.
func watchDirs(path, root, explicit string, extra ...string) []string {
	dirs := []string{filepath.Dir(path)}
	add := func(dir string) {
		if dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	add(root)
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(root, explicit)
		}
		add(filepath.Dir(explicit))
	}
	for _, dir := range extra {
		add(dir)
	}
	return dirs
}

// configDirs lists the directories of every config file the document's
// alias table is built from, so edits to an extended base config are seen.
func configDirs(fsys fs.FileSystem, r *resolve.Resolver, explicit, path, root string) []string {
	table, err := session.LoadTable(fsys, r, explicit, path, root)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, file := range table.Files {
		if dir := filepath.Dir(file); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// classify maps an event to "document", "config" or "".
func classify(event fsnotify.Event, path string) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return ""
	}
	name := filepath.Clean(event.Name)
	if name == path {
		return "document"
	}
	if slices.Contains(tsconfig.FileNames, filepath.Base(name)) || filepath.Ext(name) == ".json" {
		return "config"
	}
	return ""
}
