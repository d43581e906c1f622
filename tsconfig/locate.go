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

package tsconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/aliaslink/fs"
)

// ErrNotFound is returned when no config file exists at any searched path.
var ErrNotFound = errors.New("tsconfig not found")

// FileNames are the config file names tried in each searched directory.
var FileNames = []string{"tsconfig.json", "jsconfig.json"}

// Search describes where to look for a config file.
type Search struct {
	// Explicit is a configured path, absolute or relative to WorkspaceRoot.
	// It may name a file or a directory.
	Explicit string
	// WorkspaceRoot is the root of the workspace folder.
	WorkspaceRoot string
	// PackageRoot is the package-local fallback directory, if any.
	PackageRoot string
}

// Candidates returns the paths Locate tries, in order.
func (s Search) Candidates() []string {
	var candidates []string
	add := func(p string) {
		for _, c := range candidates {
			if c == p {
				return
			}
		}
		candidates = append(candidates, p)
	}
	inDir := func(dir string) {
		for _, name := range FileNames {
			add(filepath.Join(dir, name))
		}
	}

	if s.Explicit != "" {
		explicit := s.Explicit
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(s.WorkspaceRoot, explicit)
		}
		if strings.HasSuffix(strings.ToLower(explicit), ".json") {
			add(explicit)
		} else {
			// Could be a file without extension or a directory
			add(explicit)
			inDir(explicit)
		}
	}
	if s.WorkspaceRoot != "" {
		inDir(s.WorkspaceRoot)
	}
	if s.PackageRoot != "" {
		inDir(s.PackageRoot)
	}
	return candidates
}

// Locate returns the first existing candidate. The error wraps ErrNotFound
// and lists every searched path.
func Locate(fsys fs.FileSystem, s Search) (string, error) {
	candidates := s.Candidates()
	for _, candidate := range candidates {
		if fs.IsFile(fsys, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w (searched %s)", ErrNotFound, strings.Join(candidates, ", "))
}
