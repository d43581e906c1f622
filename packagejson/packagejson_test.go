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

package packagejson_test

import (
	"slices"
	"testing"

	"bennypowers.dev/aliaslink/packagejson"
	"bennypowers.dev/aliaslink/testutil"
)

func TestParseFile(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "workspace/monorepo", "/ws")

	pkg, err := packagejson.ParseFile(mfs, "/ws/package.json")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if !pkg.Private {
		t.Error("Expected private to be parsed")
	}
	if !slices.Equal(pkg.WorkspacePatterns(), []string{"packages/*"}) {
		t.Errorf("WorkspacePatterns() = %v", pkg.WorkspacePatterns())
	}

	if _, err := packagejson.ParseFile(mfs, "/ws/missing/package.json"); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestWorkspacePatterns(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected []string
	}{
		{"array", `{"workspaces": ["packages/*", "apps/*"]}`, []string{"packages/*", "apps/*"}},
		{"object", `{"workspaces": {"packages": ["libs/*"], "nohoist": ["**/react"]}}`, []string{"libs/*"}},
		{"absent", `{"name": "solo"}`, nil},
		{"invalid", `{"workspaces": 42}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := packagejson.Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := pkg.WorkspacePatterns(); !slices.Equal(got, tt.expected) {
				t.Errorf("WorkspacePatterns() = %v, want %v", got, tt.expected)
			}
			if pkg.HasWorkspaces() != (len(tt.expected) > 0) {
				t.Errorf("HasWorkspaces() = %v", pkg.HasWorkspaces())
			}
		})
	}
}

func TestIsWorkspace(t *testing.T) {
	pkg, err := packagejson.Parse([]byte(`{"workspaces": ["packages/*", "./tools/**", "!packages/legacy"]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tests := map[string]bool{
		"packages/ui":     true,
		"./packages/ui":   true,
		"packages/ui/src": false,
		"packages/legacy": false,
		"tools/build/cli": true,
		"apps/web":        false,
		".":               false,
	}
	for dir, want := range tests {
		if got := pkg.IsWorkspace(dir); got != want {
			t.Errorf("IsWorkspace(%q) = %v, want %v", dir, got, want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := packagejson.Parse([]byte(`{"name": `)); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}
