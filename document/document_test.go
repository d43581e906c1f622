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

package document_test

import (
	"testing"

	"bennypowers.dev/aliaslink/document"
)

func TestPositionAt(t *testing.T) {
	doc := document.New("/ws/a.js", "javascript", "ab\ncd\n\nef")
	tests := []struct {
		offset int
		want   document.Position
	}{
		{0, document.Position{Line: 0, Character: 0}},
		{2, document.Position{Line: 0, Character: 2}},
		{3, document.Position{Line: 1, Character: 0}},
		{5, document.Position{Line: 1, Character: 2}},
		{6, document.Position{Line: 2, Character: 0}},
		{7, document.Position{Line: 3, Character: 0}},
		{9, document.Position{Line: 3, Character: 2}},
		{-4, document.Position{Line: 0, Character: 0}},
		{100, document.Position{Line: 3, Character: 2}},
	}
	for _, tt := range tests {
		if got := doc.PositionAt(tt.offset); got != tt.want {
			t.Errorf("PositionAt(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestPositionAtCountsUTF16(t *testing.T) {
	// é is 2 bytes and 1 UTF-16 unit, 😀 is 4 bytes and 2 units
	text := "é😀x"
	doc := document.New("/ws/a.js", "javascript", text)
	if got := doc.PositionAt(len(text) - 1); got.Character != 3 {
		t.Errorf("PositionAt(x).Character = %d, want 3", got.Character)
	}
	if got := doc.OffsetAt(document.Position{Line: 0, Character: 3}); got != len(text)-1 {
		t.Errorf("OffsetAt(0:3) = %d, want %d", got, len(text)-1)
	}
}

func TestOffsetAtRoundTrip(t *testing.T) {
	text := "import a from '@app/a'\r\nconst b = require('@app/b')\n"
	doc := document.New("/ws/a.js", "javascript", text)
	for offset := range len(text) + 1 {
		if text[max(offset-1, 0)] == '\r' && offset > 0 {
			// Between \r and \n maps back to before \r
			continue
		}
		if got := doc.OffsetAt(doc.PositionAt(offset)); got != offset {
			t.Errorf("OffsetAt(PositionAt(%d)) = %d", offset, got)
		}
	}
}

func TestOffsetAtClamps(t *testing.T) {
	doc := document.New("/ws/a.js", "javascript", "ab\ncd")
	tests := []struct {
		pos  document.Position
		want int
	}{
		{document.Position{Line: 0, Character: 99}, 2},
		{document.Position{Line: 9, Character: 0}, 5},
		{document.Position{Line: -1, Character: 0}, 0},
	}
	for _, tt := range tests {
		if got := doc.OffsetAt(tt.pos); got != tt.want {
			t.Errorf("OffsetAt(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := document.Range{
		Start: document.Position{Line: 1, Character: 4},
		End:   document.Position{Line: 2, Character: 3},
	}
	tests := []struct {
		pos  document.Position
		want bool
	}{
		{document.Position{Line: 1, Character: 4}, true},
		{document.Position{Line: 1, Character: 80}, true},
		{document.Position{Line: 2, Character: 3}, true},
		{document.Position{Line: 1, Character: 3}, false},
		{document.Position{Line: 2, Character: 4}, false},
		{document.Position{Line: 0, Character: 10}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.pos); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestLanguageForPath(t *testing.T) {
	tests := map[string]string{
		"/ws/a.js":    "javascript",
		"/ws/a.MJS":   "javascript",
		"/ws/a.cjs":   "javascript",
		"/ws/a.jsx":   "javascriptreact",
		"/ws/a.ts":    "typescript",
		"/ws/a.tsx":   "typescriptreact",
		"/ws/App.vue": "vue",
		"/ws/i.html":  "html",
		"/ws/README":  "plaintext",
	}
	for path, want := range tests {
		if got := document.LanguageForPath(path); got != want {
			t.Errorf("LanguageForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFileURI(t *testing.T) {
	tests := map[string]string{
		"/ws/src/app/foo.ts":   "file:///ws/src/app/foo.ts",
		"/ws/my dir/a b.js":    "file:///ws/my%20dir/a%20b.js",
		"/ws/src/@scope/x.vue": "file:///ws/src/@scope/x.vue",
	}
	for path, want := range tests {
		if got := document.FileURI(path); got != want {
			t.Errorf("FileURI(%q) = %q, want %q", path, got, want)
		}
	}
}
