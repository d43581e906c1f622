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

// Package settings provides the user-facing configuration of aliaslink,
// read through viper from defaults, an optional settings file, the
// environment and command-line flags.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bennypowers.dev/aliaslink/extract"
	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/resolve"
)

// Setting keys.
const (
	KeyActiveChange      = "activeChange"
	KeyTSConfigPath      = "tsconfigPath"
	KeyRunner            = "runner"
	KeyExtensions        = "extensions"
	KeyMatcher           = "matcher"
	KeyPackageBoundaries = "packageBoundaries"
	KeyLogLevel          = "logLevel"

	// KeyLegacyTSConfigPath is the original name of KeyTSConfigPath. It is
	// read when KeyTSConfigPath is unset.
	KeyLegacyTSConfigPath = "tsconfigPaths"
)

// Matcher names.
const (
	MatcherPattern = "pattern"
	MatcherSyntax  = "syntax"
)

// FileName is the settings file name looked up in the workspace root,
// without extension.
const FileName = ".aliaslink"

// EnvPrefix prefixes environment overrides, e.g. ALIASLINK_ACTIVECHANGE.
const EnvPrefix = "ALIASLINK"

// Settings is a snapshot of the configuration.
type Settings struct {
	// ActiveChange re-resolves on every edit instead of only when a
	// document is opened or focused.
	ActiveChange bool `json:"activeChange"`
	// TSConfigPath overrides the config search; relative to the workspace.
	TSConfigPath string `json:"tsconfigPath,omitempty"`
	// Runner is the allow-list of language identifiers.
	Runner []string `json:"runner"`
	// Extensions is the probe order for extensionless candidates.
	Extensions []string `json:"extensions"`
	// Matcher selects the import extractor: "pattern" or "syntax".
	Matcher string `json:"matcher"`
	// PackageBoundaries names directories that contain monorepo packages.
	PackageBoundaries []string `json:"packageBoundaries"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `json:"logLevel"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Runner:            append([]string(nil), resolve.DefaultLanguages...),
		Extensions:        append([]string(nil), resolve.DefaultExtensions...),
		Matcher:           MatcherPattern,
		PackageBoundaries: append([]string(nil), resolve.DefaultPackageBoundaries...),
		LogLevel:          "warn",
	}
}

// Validate checks values that cannot be used as given.
func (s Settings) Validate() error {
	switch s.Matcher {
	case MatcherPattern, MatcherSyntax:
	default:
		return fmt.Errorf("invalid matcher %q: must be %q or %q", s.Matcher, MatcherPattern, MatcherSyntax)
	}
	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension %q: must start with a dot", ext)
		}
	}
	return nil
}

// Filter returns the language allow-list.
func (s Settings) Filter() resolve.LanguageFilter {
	return resolve.LanguageFilter(s.Runner)
}

// Resolver builds a resolver configured with the matcher, extensions and
// package boundaries of s.
func (s Settings) Resolver(fsys fs.FileSystem, logger resolve.Logger) (*resolve.Resolver, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := resolve.New(fsys, logger)
	if s.Matcher == MatcherSyntax {
		syntax, err := extract.NewSyntax()
		if err != nil {
			return nil, fmt.Errorf("failed to create syntax matcher: %w", err)
		}
		r = r.WithExtractor(syntax)
	}
	if len(s.Extensions) > 0 {
		r = r.WithExtensions(s.Extensions)
	}
	if len(s.PackageBoundaries) > 0 {
		r = r.WithPackageBoundaries(s.PackageBoundaries)
	}
	return r, nil
}

// Source is the configuration accessor. Settings is called at the start of
// every resolution pass, so a source backed by a live store picks up
// changes without a restart.
type Source interface {
	Settings() Settings
}

// Static is a Source that always returns the same settings.
type Static Settings

// Settings implements Source.
func (s Static) Settings() Settings {
	return Settings(s)
}

// Viper is a Source reading the current values of a viper instance.
type Viper struct {
	v *viper.Viper
}

// FromViper registers defaults and the environment prefix on v, and
// returns a Source reading from it.
func FromViper(v *viper.Viper) *Viper {
	d := Default()
	v.SetDefault(KeyActiveChange, d.ActiveChange)
	v.SetDefault(KeyTSConfigPath, d.TSConfigPath)
	v.SetDefault(KeyRunner, d.Runner)
	v.SetDefault(KeyExtensions, d.Extensions)
	v.SetDefault(KeyMatcher, d.Matcher)
	v.SetDefault(KeyPackageBoundaries, d.PackageBoundaries)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return &Viper{v: v}
}

// ReadFile loads the settings file. An explicit path is read as given;
// otherwise FileName is looked up in workspaceRoot, and its absence is not
// an error.
func (s *Viper) ReadFile(explicit, workspaceRoot string) error {
	if explicit != "" {
		s.v.SetConfigFile(explicit)
	} else {
		s.v.SetConfigName(FileName)
		s.v.AddConfigPath(workspaceRoot)
	}
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

// File returns the settings file in use, or "".
func (s *Viper) File() string {
	return s.v.ConfigFileUsed()
}

// Settings implements Source.
func (s *Viper) Settings() Settings {
	tsconfigPath := s.v.GetString(KeyTSConfigPath)
	if tsconfigPath == "" {
		tsconfigPath = s.v.GetString(KeyLegacyTSConfigPath)
	}
	return Settings{
		ActiveChange:      s.v.GetBool(KeyActiveChange),
		TSConfigPath:      tsconfigPath,
		Runner:            s.v.GetStringSlice(KeyRunner),
		Extensions:        s.v.GetStringSlice(KeyExtensions),
		Matcher:           s.v.GetString(KeyMatcher),
		PackageBoundaries: s.v.GetStringSlice(KeyPackageBoundaries),
		LogLevel:          s.v.GetString(KeyLogLevel),
	}
}
