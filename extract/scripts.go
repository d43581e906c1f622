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

package extract

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// Block is the body of one <script> element and its byte offset in the
// enclosing document.
type Block struct {
	Offset int
	Text   string
}

// ScriptBlocks tokenizes an HTML-like document (HTML, Vue single-file
// components) and returns the bodies of its <script> elements.
func ScriptBlocks(content string) []Block {
	z := html.NewTokenizer(strings.NewReader(content))
	var blocks []Block
	offset := 0
	inScript := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return blocks
		}
		// Raw is the unmodified token text, so its length advances the offset
		// exactly. Read it before TagName, which lowercases in place.
		size := len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				blocks = append(blocks, Block{
					Offset: offset,
					Text:   content[offset : offset+size],
				})
			}
		}
		offset += size
	}
}

// Scripts runs an inner extractor over the <script> blocks of a document
// and reports spans relative to the whole document.
type Scripts struct {
	inner Extractor
}

// NewScripts wraps inner so it only sees script blocks.
func NewScripts(inner Extractor) *Scripts {
	return &Scripts{inner: inner}
}

// Extract implements Extractor.
func (s *Scripts) Extract(text string) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, block := range ScriptBlocks(text) {
			for occ := range s.inner.Extract(block.Text) {
				occ.Span = occ.Span.Shift(block.Offset)
				occ.Statement = occ.Statement.Shift(block.Offset)
				if !yield(occ) {
					return
				}
			}
		}
	}
}

// ForLanguage returns the extractor suited to a language identifier:
// markup languages get their script blocks scanned, everything else is
// handed to base unchanged.
func ForLanguage(languageID string, base Extractor) Extractor {
	switch languageID {
	case "vue", "html", "svelte":
		return NewScripts(base)
	default:
		return base
	}
}
