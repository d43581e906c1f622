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

// Package tsconfig locates and loads tsconfig-style files and exposes their
// compilerOptions.paths as an ordered alias table.
package tsconfig

import (
	"path"
	"path/filepath"
	"strings"
)

// Alias is one entry of compilerOptions.paths.
type Alias struct {
	// Pattern is the key, e.g. "@app/*".
	Pattern string `json:"pattern"`
	// Targets are the path templates, e.g. ["src/app/*"]. Only the first is
	// used for resolution.
	Targets []string `json:"targets"`
}

// Wildcard reports whether the pattern ends in a wildcard segment.
func (a Alias) Wildcard() bool {
	return strings.HasSuffix(a.Pattern, "*")
}

// Prefix returns the pattern with its trailing wildcard stripped.
func (a Alias) Prefix() string {
	return strings.TrimSuffix(a.Pattern, "*")
}

// root is the wildcard prefix without its trailing separator, so "@app/*"
// also applies to the bare specifier "@app".
func (a Alias) root() string {
	return strings.TrimSuffix(a.Prefix(), "/")
}

// Matches reports whether the alias applies to specifier. Wildcard patterns
// match by prefix or on their bare root. Patterns without a wildcard match
// the key itself or any path below it, so "utils" applies to "utils/format"
// but not to "utilsx".
func (a Alias) Matches(specifier string) bool {
	if len(a.Targets) == 0 {
		return false
	}
	if a.Wildcard() {
		return strings.HasPrefix(specifier, a.Prefix()) || specifier == a.root()
	}
	return specifier == a.Pattern || strings.HasPrefix(specifier, a.Pattern+"/")
}

// Rewrite substitutes the first target for the matched prefix of specifier
// and returns the candidate path with any leading separator removed, so the
// candidate is always relative to a probe root.
// For "@app/*" -> "src/app/*", "@app/foo" becomes "src/app/foo" and the bare
// "@app" becomes "src/app". For "utils" -> "src/utils", "utils/format"
// becomes "src/utils/format". A target without a wildcard gets the rest of
// the specifier appended as a path segment.
func (a Alias) Rewrite(specifier string) string {
	target := a.Targets[0]
	if !a.Wildcard() {
		return trimLeadingSeparator(target + strings.TrimPrefix(specifier, a.Pattern))
	}
	if specifier == a.root() && a.root() != a.Prefix() {
		dir, _, _ := strings.Cut(target, "*")
		return trimLeadingSeparator(strings.TrimRight(dir, `/\`))
	}
	rest := strings.TrimPrefix(specifier, a.Prefix())
	var candidate string
	if i := strings.Index(target, "*"); i >= 0 {
		candidate = target[:i] + rest + target[i+1:]
	} else {
		candidate = path.Join(target, rest)
	}
	return trimLeadingSeparator(candidate)
}

func trimLeadingSeparator(p string) string {
	if filepath.VolumeName(p) != "" {
		return p
	}
	return strings.TrimLeft(p, `/\`)
}

// Table is the alias table of one config file, in declaration order.
type Table struct {
	// Path is the config file the table was loaded from.
	Path string `json:"path"`
	// BaseURL is compilerOptions.baseUrl relative to the config directory.
	BaseURL string `json:"baseUrl,omitempty"`
	// Aliases are the paths entries, in declaration order; entries from an
	// extended config follow the entries the child declares itself.
	Aliases []Alias `json:"aliases"`
	// Files are the config files read to build the table: Path first, then
	// every config reached through extends.
	Files []string `json:"files,omitempty"`
}

// Empty reports whether the config declares no paths.
func (t *Table) Empty() bool {
	return t == nil || len(t.Aliases) == 0
}

// Dir returns the directory holding the config file.
func (t *Table) Dir() string {
	return filepath.Dir(t.Path)
}

// BaseDir returns the absolute baseUrl directory, or "" when no baseUrl is
// configured.
func (t *Table) BaseDir() string {
	if t.BaseURL == "" {
		return ""
	}
	if filepath.IsAbs(t.BaseURL) {
		return filepath.Clean(t.BaseURL)
	}
	return filepath.Join(t.Dir(), t.BaseURL)
}

// Match returns the first alias, in declaration order, that applies to
// specifier. When several prefixes match, the first declared wins; there is
// no longest-prefix preference.
func (t *Table) Match(specifier string) (Alias, bool) {
	if t == nil {
		return Alias{}, false
	}
	for _, alias := range t.Aliases {
		if alias.Matches(specifier) {
			return alias, true
		}
	}
	return Alias{}, false
}
