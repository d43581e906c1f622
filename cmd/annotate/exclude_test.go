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
	"path/filepath"
	"slices"
	"testing"
)

func TestExcluder(t *testing.T) {
	root := filepath.FromSlash("/ws")
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/node_modules/", "node_modules/x/index.js", true},
		{"**/node_modules/", "packages/ui/node_modules/x/index.js", true},
		{"**/node_modules/", "src/main.js", false},
		{"dist/", "dist/main.js", true},
		{"dist/", "src/dist/main.js", true},
		{"dist/", "distance/main.js", false},
		{"*.test.js", "main.test.js", true},
		{"*.test.js", "src/app/main.test.js", true},
		{"*.test.js", "src/app/main.js", false},
		{"/legacy.js", "legacy.js", true},
		{"/legacy.js", "src/legacy.js", false},
		{"src/gen/*.js", "src/gen/a.js", true},
		{"src/gen/*.js", "src/gen/deep/a.js", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			e, err := newExcluder(root, []string{tt.pattern})
			if err != nil {
				t.Fatalf("newExcluder() error = %v", err)
			}
			path := filepath.Join(root, filepath.FromSlash(tt.path))
			if got := e.excluded(path); got != tt.want {
				t.Errorf("excluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExcluderFilter(t *testing.T) {
	root := filepath.FromSlash("/ws")
	files := []string{
		filepath.Join(root, "src", "main.js"),
		filepath.Join(root, "node_modules", "lodash", "index.js"),
		filepath.Join(root, "src", "main.test.js"),
	}

	e, err := newExcluder(root, []string{"node_modules/", " ", "*.test.js"})
	if err != nil {
		t.Fatalf("newExcluder() error = %v", err)
	}
	got := e.filter(files)
	if !slices.Equal(got, files[:1]) {
		t.Errorf("filter() = %v, want %v", got, files[:1])
	}

	none, err := newExcluder(root, nil)
	if err != nil {
		t.Fatalf("newExcluder() error = %v", err)
	}
	if got := none.filter(files); len(got) != len(files) {
		t.Errorf("filter() without patterns kept %d files, want %d", len(got), len(files))
	}
}

func TestExcluderInvalidPattern(t *testing.T) {
	if _, err := newExcluder("/ws", []string{"src/[a-"}); err == nil {
		t.Error("newExcluder() with an unclosed range error = nil")
	}
}
