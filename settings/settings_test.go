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

package settings_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/viper"

	"bennypowers.dev/aliaslink/internal/mapfs"
	"bennypowers.dev/aliaslink/settings"
)

func TestViperDefaults(t *testing.T) {
	src := settings.FromViper(viper.New())
	got := src.Settings()
	want := settings.Default()

	if got.ActiveChange != want.ActiveChange {
		t.Errorf("ActiveChange = %v, want %v", got.ActiveChange, want.ActiveChange)
	}
	if got.TSConfigPath != "" {
		t.Errorf("TSConfigPath = %q, want empty", got.TSConfigPath)
	}
	if !slices.Equal(got.Runner, []string{"javascript"}) {
		t.Errorf("Runner = %v, want [javascript]", got.Runner)
	}
	if !slices.Equal(got.Extensions, []string{".vue", ".js", ".ts"}) {
		t.Errorf("Extensions = %v", got.Extensions)
	}
	if got.Matcher != settings.MatcherPattern {
		t.Errorf("Matcher = %q, want %q", got.Matcher, settings.MatcherPattern)
	}
	if !slices.Equal(got.PackageBoundaries, want.PackageBoundaries) {
		t.Errorf("PackageBoundaries = %v, want %v", got.PackageBoundaries, want.PackageBoundaries)
	}
}

func TestViperLegacyTSConfigPath(t *testing.T) {
	v := viper.New()
	src := settings.FromViper(v)

	v.Set(settings.KeyLegacyTSConfigPath, "config/tsconfig.legacy.json")
	if got := src.Settings().TSConfigPath; got != "config/tsconfig.legacy.json" {
		t.Errorf("TSConfigPath = %q, want the legacy value", got)
	}

	v.Set(settings.KeyTSConfigPath, "tsconfig.app.json")
	if got := src.Settings().TSConfigPath; got != "tsconfig.app.json" {
		t.Errorf("TSConfigPath = %q, want the current key to win", got)
	}
}

func TestViperEnvironment(t *testing.T) {
	t.Setenv("ALIASLINK_MATCHER", "syntax")
	t.Setenv("ALIASLINK_ACTIVECHANGE", "true")

	got := settings.FromViper(viper.New()).Settings()
	if got.Matcher != settings.MatcherSyntax {
		t.Errorf("Matcher = %q, want syntax from the environment", got.Matcher)
	}
	if !got.ActiveChange {
		t.Error("ActiveChange = false, want true from the environment")
	}
}

func TestViperReadFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"activeChange": true, "tsconfigPaths": "config/tsconfig.json", "runner": ["javascript", "vue"]}`
	if err := os.WriteFile(filepath.Join(dir, ".aliaslink.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src := settings.FromViper(viper.New())
	if err := src.ReadFile("", dir); err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if src.File() != filepath.Join(dir, ".aliaslink.json") {
		t.Errorf("File() = %q", src.File())
	}

	got := src.Settings()
	if !got.ActiveChange {
		t.Error("ActiveChange = false, want true")
	}
	if got.TSConfigPath != "config/tsconfig.json" {
		t.Errorf("TSConfigPath = %q, want the legacy key's value", got.TSConfigPath)
	}
	if !slices.Equal(got.Runner, []string{"javascript", "vue"}) {
		t.Errorf("Runner = %v", got.Runner)
	}
	if got.Matcher != settings.MatcherPattern {
		t.Errorf("Matcher = %q, want the default", got.Matcher)
	}
}

func TestViperReadFileMissing(t *testing.T) {
	dir := t.TempDir()

	src := settings.FromViper(viper.New())
	if err := src.ReadFile("", dir); err != nil {
		t.Errorf("ReadFile() without a settings file error = %v, want nil", err)
	}
	if src.File() != "" {
		t.Errorf("File() = %q, want empty", src.File())
	}

	src = settings.FromViper(viper.New())
	if err := src.ReadFile(filepath.Join(dir, "missing.json"), dir); err == nil {
		t.Error("ReadFile() with a missing explicit file error = nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*settings.Settings)
		wantErr bool
	}{
		{name: "defaults", modify: func(*settings.Settings) {}},
		{name: "syntax matcher", modify: func(s *settings.Settings) { s.Matcher = settings.MatcherSyntax }},
		{name: "unknown matcher", modify: func(s *settings.Settings) { s.Matcher = "regex" }, wantErr: true},
		{name: "empty matcher", modify: func(s *settings.Settings) { s.Matcher = "" }, wantErr: true},
		{name: "extension without dot", modify: func(s *settings.Settings) { s.Extensions = []string{".js", "ts"} }, wantErr: true},
		{name: "no extensions", modify: func(s *settings.Settings) { s.Extensions = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Default()
			tt.modify(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	s := settings.Default()
	s.Runner = []string{"javascript", "vue"}
	filter := s.Filter()
	if !filter.Allows("vue") || filter.Allows("typescript") {
		t.Errorf("Filter() = %v", filter)
	}
}

func TestResolver(t *testing.T) {
	mfs := mapfs.New()

	s := settings.Default()
	s.Matcher = settings.MatcherSyntax
	r, err := s.Resolver(mfs, nil)
	if err != nil {
		t.Fatalf("Resolver() error = %v", err)
	}
	if r == nil {
		t.Fatal("Resolver() = nil")
	}

	s.Matcher = "regex"
	if _, err := s.Resolver(mfs, nil); err == nil {
		t.Error("Resolver() with an invalid matcher error = nil")
	}
}

func TestResolverPackageBoundaries(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/ws/modules/ui/tsconfig.json", "{}", 0644)

	s := settings.Default()
	r, err := s.Resolver(mfs, nil)
	if err != nil {
		t.Fatalf("Resolver() error = %v", err)
	}
	if got := r.PackageRoot("/ws/modules/ui/src/a.js", "/ws"); got != "/ws/modules/ui" {
		// Found by the nearest-config walk, not the boundary
		t.Errorf("PackageRoot() = %q, want /ws/modules/ui", got)
	}

	s.PackageBoundaries = []string{"modules"}
	r, err = s.Resolver(mfs, nil)
	if err != nil {
		t.Fatalf("Resolver() error = %v", err)
	}
	if got := r.PackageRoot("/ws/modules/ui/src/deep/a.js", "/ws"); got != "/ws/modules/ui" {
		t.Errorf("PackageRoot() = %q, want /ws/modules/ui", got)
	}
}

func TestStatic(t *testing.T) {
	s := settings.Default()
	s.ActiveChange = true
	if !settings.Static(s).Settings().ActiveChange {
		t.Error("Static().Settings() did not return the given settings")
	}
}
