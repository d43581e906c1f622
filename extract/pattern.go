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
	"regexp"
)

// leadingComments skips block comments between an opening parenthesis and
// the specifier, e.g. `import(/* webpackChunkName: "x" */ '@app/x')` or a
// `/** @type */` marker.
const leadingComments = `(?:/\*[\s\S]*?\*/\s*)*`

const quotedSpec = `['"](?P<spec>[^'"\r\n]+)['"]`

// form is one recognized statement shape.
type form struct {
	kind    Kind
	pattern *regexp.Regexp
}

// Forms are tried in this order. All matches of all forms are kept; when two
// forms find the same specifier, the earlier form wins, so forms that capture
// a binding come before their binding-less counterparts.
var forms = []form{
	{Require, regexp.MustCompile(`\b(?:const|let|var)\s+(?P<binding>[\w$]+|\{[^}]*\}|\[[^\]]*\])\s*=\s*require\s*\(\s*` + leadingComments + quotedSpec)},
	{Static, regexp.MustCompile(`\bimport\s+(?P<binding>[\w$*{},\s]+?)\s*from\s*` + quotedSpec)},
	{Reexport, regexp.MustCompile(`\bexport\s+(?P<binding>(?:type\s+)?(?:\*(?:\s*as\s+[\w$]+)?|\{[^}]*\}))\s*from\s*` + quotedSpec)},
	{SideEffect, regexp.MustCompile(`\bimport\s*` + quotedSpec)},
	{Dynamic, regexp.MustCompile(`\bimport\s*\(\s*` + leadingComments + quotedSpec)},
	{Require, regexp.MustCompile(`\brequire\s*\(\s*` + leadingComments + quotedSpec)},
}

// Pattern is the regular-expression extractor. It is the default because it
// needs no parser and tolerates incomplete code while the user is typing.
type Pattern struct{}

// NewPattern creates a pattern extractor.
func NewPattern() *Pattern {
	return &Pattern{}
}

// Extract implements Extractor.
func (p *Pattern) Extract(text string) iter.Seq[Occurrence] {
	return lazy(func() []Occurrence { return p.scan(text) })
}

func (p *Pattern) scan(text string) []Occurrence {
	var found []Occurrence
	for _, f := range forms {
		specIdx := f.pattern.SubexpIndex("spec")
		bindingIdx := f.pattern.SubexpIndex("binding")
		for _, m := range f.pattern.FindAllStringSubmatchIndex(text, -1) {
			occ := Occurrence{
				Specifier: text[m[2*specIdx]:m[2*specIdx+1]],
				Kind:      f.kind,
				Span:      Span{Start: m[2*specIdx], End: m[2*specIdx+1]},
				Statement: Span{Start: m[0], End: m[1]},
			}
			if bindingIdx >= 0 && m[2*bindingIdx] >= 0 {
				occ.Binding = normalizeBinding(text[m[2*bindingIdx]:m[2*bindingIdx+1]])
			}
			found = append(found, occ)
		}
	}
	return collect(found)
}
