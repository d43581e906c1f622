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

package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"bennypowers.dev/aliaslink/internal/output"
	"bennypowers.dev/aliaslink/session"
	"bennypowers.dev/aliaslink/settings"
	"bennypowers.dev/aliaslink/testutil"
)

func basicResult(t *testing.T) output.Result {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "workspace/basic", "/ws")
	s := session.New(session.Config{
		FS:        mfs,
		Workspace: session.Folders{"/ws"},
		Settings:  settings.Static(settings.Default()),
	})
	ann, err := s.SetActive(testutil.OpenDocument(t, mfs, "/ws/src/main.js"))
	if err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	return output.Result{Annotations: ann}
}

func TestRenderText(t *testing.T) {
	got, err := output.Render([]output.Result{basicResult(t)}, output.FormatText)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	golden := "golden/annotate-basic.txt"
	testutil.UpdateGoldenFile(t, golden, []byte(got+"\n"))
	want := testutil.LoadGoldenFile(t, golden)
	if want == nil {
		return
	}
	if got != strings.TrimSuffix(string(want), "\n") {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTextErrorsAndEmpty(t *testing.T) {
	results := []output.Result{
		{Annotations: session.Annotations{Path: "/ws/a.js"}, Error: "tsconfig not found"},
		{Annotations: session.Annotations{Path: "/ws/b.js"}},
	}
	got, err := output.Render(results, output.FormatText)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "/ws/a.js\n  error: tsconfig not found\n\n/ws/b.js\n  no aliased imports"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	result := basicResult(t)

	got, err := output.Render([]output.Result{result}, output.FormatJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var single struct {
		Path    string `json:"path"`
		Imports []struct {
			Alias string `json:"alias"`
			Path  string `json:"path"`
			Found bool   `json:"found"`
		} `json:"imports"`
		Links []struct {
			Target string `json:"target"`
		} `json:"links"`
	}
	if err := json.Unmarshal([]byte(got), &single); err != nil {
		t.Fatalf("single result is not a JSON object: %v\n%s", err, got)
	}
	if single.Path != "/ws/src/main.js" || len(single.Imports) != 5 {
		t.Errorf("Render() = %s", got)
	}
	if single.Imports[4].Found {
		t.Error("missing import marked as found")
	}
	if single.Links[0].Target != "file:///ws/src/app/foo.ts" {
		t.Errorf("first link target = %q", single.Links[0].Target)
	}

	got, err = output.Render([]output.Result{result, result}, output.FormatJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var many []json.RawMessage
	if err := json.Unmarshal([]byte(got), &many); err != nil {
		t.Fatalf("several results are not a JSON array: %v", err)
	}
	if len(many) != 2 {
		t.Errorf("array has %d entries, want 2", len(many))
	}
}

func TestRenderNDJSON(t *testing.T) {
	results := []output.Result{
		basicResult(t),
		{Annotations: session.Annotations{Path: "/ws/b.js"}, Error: "boom"},
	}
	got, err := output.Render(results, output.FormatNDJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() gave %d lines, want 2", len(lines))
	}
	var second struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 is not JSON: %v", err)
	}
	if second.Path != "/ws/b.js" || second.Error != "boom" {
		t.Errorf("line 2 = %+v", second)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	if _, err := output.Render(nil, "yaml"); err == nil {
		t.Error("Render() with an unknown format error = nil")
	}
	for _, f := range output.Formats {
		if err := output.ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
}

func TestReporter(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	r := output.NewReporter(&buf)
	r.Report(errors.New("tsconfig not found"))
	r.Report(nil)
	r.Warn("skipped %d files", 2)

	want := "error: tsconfig not found\nwarning: skipped 2 files\n"
	if buf.String() != want {
		t.Errorf("Reporter wrote %q, want %q", buf.String(), want)
	}
}
