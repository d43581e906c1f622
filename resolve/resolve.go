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
// Package resolve maps aliased import specifiers to files on disk.
package resolve

import (
	"slices"

	"bennypowers.dev/aliaslink/document"
	"bennypowers.dev/aliaslink/extract"
)

// Logger is an interface for logging messages during resolution.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// Document is the part of an editor document the resolver reads.
type Document interface {
	Text() string
	LanguageID() string
	Path() string
}

// LanguageFilter is the allow-list of language identifiers that get
// resolved. Documents in any other language are skipped before any work.
type LanguageFilter []string

// DefaultLanguages resolves JavaScript documents only.
var DefaultLanguages = LanguageFilter{"javascript"}

// Allows reports whether languageID is in the allow-list.
func (f LanguageFilter) Allows(languageID string) bool {
	return slices.Contains(f, languageID)
}

// DefaultExtensions is the probe order for extensionless candidates.
var DefaultExtensions = []string{".vue", ".js", ".ts"}

// DefaultPackageBoundaries are directory names whose child directories are
// treated as packages with their own config in a monorepo.
var DefaultPackageBoundaries = []string{"packages", "apps"}

// ResolvedImport binds one occurrence to the file its alias points at.
type ResolvedImport struct {
	Occurrence extract.Occurrence `json:"occurrence"`
	// Alias is the matched paths key, e.g. "@app/*".
	Alias string `json:"alias"`
	// Path is the absolute resolved path. When no probe hit, it is the
	// extensionless candidate under the workspace root.
	Path string `json:"path"`
	// Found reports whether Path exists.
	Found bool `json:"found"`
	// HoverText is the annotation shown over the statement.
	HoverText string `json:"hoverText"`
}

// Target returns the link target as a file URI.
func (ri ResolvedImport) Target() string {
	return document.FileURI(ri.Path)
}

// HoverText formats the hover annotation for an alias and a path.
func HoverText(alias, path string) string {
	return "Alias: " + alias + "\nPath: \"" + path + "\""
}
