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

// Package packagejson reads the parts of package.json that describe a
// monorepo: the workspaces field and the package name.
package packagejson

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/aliaslink/fs"
)

// FileName is the manifest file name.
const FileName = "package.json"

// workspacesObjectFormat represents the object format for workspaces field.
// Used by yarn classic with nohoist: {"packages": [...], "nohoist": [...]}
type workspacesObjectFormat struct {
	Packages []string `json:"packages"`
}

// PackageJSON represents the subset of package.json relevant for locating
// workspace packages.
type PackageJSON struct {
	Name          string          `json:"name"`
	Private       bool            `json:"private,omitempty"`
	RawWorkspaces json.RawMessage `json:"workspaces,omitempty"`
}

// WorkspacePatterns returns the workspace glob patterns from the workspaces field.
// Handles both array format ["packages/*"] and object format {"packages": ["libs/*"]}.
func (pkg *PackageJSON) WorkspacePatterns() []string {
	if len(pkg.RawWorkspaces) == 0 {
		return nil
	}

	// Try array format first (most common)
	var patterns []string
	if err := json.Unmarshal(pkg.RawWorkspaces, &patterns); err == nil {
		return patterns
	}

	// Try object format with "packages" key (yarn classic with nohoist)
	var obj workspacesObjectFormat
	if err := json.Unmarshal(pkg.RawWorkspaces, &obj); err == nil {
		return obj.Packages
	}

	return nil
}

// HasWorkspaces returns true if the package has workspace patterns defined.
func (pkg *PackageJSON) HasWorkspaces() bool {
	return len(pkg.WorkspacePatterns()) > 0
}

// IsWorkspace reports whether dir, a slash path relative to the directory
// holding the manifest, is a workspace package. Patterns starting with "!"
// exclude directories matched by earlier patterns.
func (pkg *PackageJSON) IsWorkspace(dir string) bool {
	dir = path.Clean(strings.TrimPrefix(dir, "./"))
	matched := false
	for _, pattern := range pkg.WorkspacePatterns() {
		negated := strings.HasPrefix(pattern, "!")
		pattern = path.Clean(strings.TrimPrefix(strings.TrimPrefix(pattern, "!"), "./"))
		ok, err := doublestar.Match(pattern, dir)
		if err != nil || !ok {
			continue
		}
		matched = !negated
	}
	return matched
}

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ParseFile parses a package.json file.
func ParseFile(fs fs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
