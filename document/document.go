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

// Package document models the text buffer of an editor document: its content,
// language identifier and path, plus conversion between byte offsets and
// line/character positions.
package document

import (
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Position is a zero-based line and character, where character counts UTF-16
// code units as editors and language servers do.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// Range is a span of positions from Start to End.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether pos falls inside the range. Both ends are
// inclusive, matching how hover ranges are hit-tested in editors.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && !r.End.Before(pos)
}

// Document is an immutable snapshot of an editor buffer.
type Document struct {
	text       string
	languageID string
	path       string
	lineStarts []int
}

// New creates a document snapshot.
func New(path, languageID, text string) *Document {
	return &Document{
		text:       text,
		languageID: languageID,
		path:       path,
		lineStarts: computeLineStarts(text),
	}
}

// Text returns the full document text.
func (d *Document) Text() string { return d.text }

// LanguageID returns the editor language identifier, e.g. "javascript".
func (d *Document) LanguageID() string { return d.languageID }

// Path returns the filesystem path of the document.
func (d *Document) Path() string { return d.path }

// PositionAt converts a byte offset into a Position. Offsets outside the
// text are clamped.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	start := d.lineStarts[line]
	return Position{Line: line, Character: utf16Len(d.text[start:offset])}
}

// OffsetAt converts a Position back into a byte offset. Positions past the
// end of a line are clamped to the line end.
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineStarts) {
		return len(d.text)
	}
	start := d.lineStarts[pos.Line]
	end := len(d.text)
	if pos.Line+1 < len(d.lineStarts) {
		end = d.lineStarts[pos.Line+1]
	}
	units := 0
	for i, r := range d.text[start:end] {
		if units >= pos.Character || r == '\n' || r == '\r' {
			return start + i
		}
		units += utf16RuneLen(r)
	}
	return end
}

// RangeOf converts a byte span into a Range.
func (d *Document) RangeOf(start, end int) Range {
	return Range{Start: d.PositionAt(start), End: d.PositionAt(end)}
}

// LanguageForPath guesses an editor language identifier from a file
// extension. Unknown extensions yield "plaintext".
func LanguageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".jsx":
		return "javascriptreact"
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "typescriptreact"
	case ".vue":
		return "vue"
	case ".html", ".htm":
		return "html"
	default:
		return "plaintext"
	}
}

// FileURI returns the file:// URI for an absolute path.
func FileURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

func computeLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		n += utf16RuneLen(r)
		s = s[size:]
	}
	return n
}

func utf16RuneLen(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
