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

// Package extract finds import-like statements in JavaScript and TypeScript
// source text. It reports every module specifier together with the byte
// spans of the specifier and of the statement that contains it.
//
// Extraction works on raw text. A specifier-shaped string inside a comment or
// a template literal can be picked up, and unusual formatting can be missed.
package extract

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// Kind classifies how a module is pulled in.
type Kind int

const (
	// Static is `import x from 'y'` or `import { a } from 'y'`.
	Static Kind = iota
	// SideEffect is `import 'y'`.
	SideEffect
	// Dynamic is `import('y')`.
	Dynamic
	// Require is `require('y')`, with or without an assignment.
	Require
	// Reexport is `export { a } from 'y'` or `export * from 'y'`.
	Reexport
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case SideEffect:
		return "side-effect"
	case Dynamic:
		return "dynamic"
	case Require:
		return "require"
	case Reexport:
		return "re-export"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span is a half-open byte range [Start, End) into the scanned text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Occurrence is one textual instance of a module specifier.
type Occurrence struct {
	// Binding is the imported name, e.g. "foo" for `import foo from 'x'`.
	// Forms without a binding use the specifier.
	Binding string `json:"binding"`
	// Specifier is the string literal content, without quotes.
	Specifier string `json:"specifier"`
	// Kind is the statement form the occurrence came from.
	Kind Kind `json:"kind"`
	// Span covers the specifier, without quotes.
	Span Span `json:"span"`
	// Statement covers the whole matched statement.
	Statement Span `json:"statement"`
}

// Relative reports whether the specifier is a relative path.
func (o Occurrence) Relative() bool {
	return strings.HasPrefix(o.Specifier, ".")
}

// Extractor scans text for import occurrences. The returned sequence is
// computed when iterated, so ranging over it twice scans twice and yields
// the same occurrences in the same order.
type Extractor interface {
	Extract(text string) iter.Seq[Occurrence]
}

// Imports scans text with the default pattern matcher.
func Imports(text string) iter.Seq[Occurrence] {
	return NewPattern().Extract(text)
}

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	namespaceForm = regexp.MustCompile(`^\*\s*as\s+([\w$]+)$`)
)

// normalizeBinding turns an import clause into a display binding name.
// A leading `type` marker is dropped and `* as ns` becomes `ns`.
func normalizeBinding(clause string) string {
	clause = strings.TrimSpace(spaceRun.ReplaceAllString(clause, " "))
	if rest, ok := strings.CutPrefix(clause, "type "); ok {
		clause = strings.TrimSpace(rest)
	}
	if m := namespaceForm.FindStringSubmatch(clause); m != nil {
		return m[1]
	}
	return clause
}

// collect orders occurrences by specifier position and drops repeats of the
// same specifier span. Earlier entries win, so callers list binding-carrying
// forms first.
func collect(found []Occurrence) []Occurrence {
	slices.SortStableFunc(found, func(a, b Occurrence) int {
		return a.Span.Start - b.Span.Start
	})
	out := found[:0]
	lastEnd := -1
	for _, occ := range found {
		if occ.Span.Start < lastEnd {
			continue
		}
		if occ.Binding == "" {
			occ.Binding = occ.Specifier
		}
		out = append(out, occ)
		lastEnd = occ.Span.End
	}
	return out
}

// lazy defers scan until the sequence is ranged over.
func lazy(scan func() []Occurrence) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, occ := range scan() {
			if !yield(occ) {
				return
			}
		}
	}
}
