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

package annotate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// excluder drops files matching any of a set of gitignore-like patterns,
// matched against the path relative to the workspace root.
type excluder struct {
	root     string
	patterns []glob.Glob
}

// newExcluder compiles patterns the way .gitignore reads them. A trailing "/"
// excludes a whole directory. Patterns without a slash match at any depth
// unless a leading "/" anchors them to the root.
func newExcluder(root string, patterns []string) (*excluder, error) {
	e := &excluder{root: root}
	for _, raw := range patterns {
		pattern := filepath.ToSlash(strings.TrimSpace(raw))
		if pattern == "" {
			continue
		}
		dir := strings.HasSuffix(pattern, "/")
		pattern = strings.TrimSuffix(pattern, "/")
		anchored := strings.HasPrefix(pattern, "/")
		pattern = strings.TrimPrefix(pattern, "/")
		if !anchored && !strings.Contains(pattern, "/") {
			pattern = "**/" + pattern
		}
		if dir {
			pattern += "/**"
		}
		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", raw, err)
			}
			e.patterns = append(e.patterns, g)
		}
	}
	return e, nil
}

// excluded reports whether path matches a pattern.
func (e *excluder) excluded(path string) bool {
	if len(e.patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(e.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, g := range e.patterns {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// filter returns the files that are not excluded.
func (e *excluder) filter(files []string) []string {
	var kept []string
	for _, f := range files {
		if !e.excluded(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
