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

// Package cli assembles the collaborators shared by aliaslink commands from
// the root command's flags.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"bennypowers.dev/aliaslink/document"
	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/internal/logging"
	"bennypowers.dev/aliaslink/internal/output"
	"bennypowers.dev/aliaslink/resolve"
	"bennypowers.dev/aliaslink/session"
	"bennypowers.dev/aliaslink/settings"
)

// Env is the environment a command runs in.
type Env struct {
	FS       fs.FileSystem
	Root     string
	Settings *settings.Viper
	Logger   *logging.Logger
	Reporter *output.Reporter
}

// Setup reads the workspace root, the settings file and the log level.
// Without --root, the workspace root is found by walking up from the
// working directory.
func Setup() (*Env, error) {
	osfs := fs.NewOSFileSystem()

	var root string
	if r := viper.GetString("root"); r != "" {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("invalid root directory: %w", err)
		}
		root = abs
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = resolve.FindWorkspaceRoot(osfs, cwd)
	}

	src := settings.FromViper(viper.GetViper())
	if err := src.ReadFile(viper.GetString("config"), root); err != nil {
		return nil, err
	}
	current := src.Settings()
	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger := logging.New(current.LogLevel, os.Stderr)
	if file := src.File(); file != "" {
		logger.Debug("Using settings file %s", file)
	}

	return &Env{
		FS:       osfs,
		Root:     root,
		Settings: src,
		Logger:   logger,
		Reporter: output.NewReporter(nil),
	}, nil
}

// Session creates a session for the workspace. Errors go to the reporter
// only when report is true.
func (e *Env) Session(report bool) *session.Session {
	cfg := session.Config{
		FS:        e.FS,
		Workspace: session.Folders{e.Root},
		Settings:  e.Settings,
		Logger:    e.Logger,
	}
	if report {
		cfg.Reporter = e.Reporter
	}
	return session.New(cfg)
}

// Open reads the file at path as a document. An empty languageID is
// derived from the file extension.
func Open(fsys fs.FileSystem, path, languageID string) (*document.Document, error) {
	text, err := fs.ReadText(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if languageID == "" {
		languageID = document.LanguageForPath(path)
	}
	return document.New(path, languageID, text), nil
}
