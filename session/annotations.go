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

package session

import (
	"bennypowers.dev/aliaslink/document"
	"bennypowers.dev/aliaslink/resolve"
)

// Document is an editor document as seen by a session.
type Document interface {
	resolve.Document
	RangeOf(start, end int) document.Range
}

// Annotations is the result of one resolution pass over a document. It is
// never mutated after Annotate returns it.
type Annotations struct {
	Path    string                   `json:"path"`
	Imports []resolve.ResolvedImport `json:"imports"`
	Hovers  []Hover                  `json:"hovers"`
	Links   []Link                   `json:"links"`
}

// Empty reports whether the pass resolved nothing.
func (a Annotations) Empty() bool {
	return len(a.Imports) == 0
}

// Annotate converts resolved imports into hovers over their statements and
// links over their specifiers.
func Annotate(doc Document, imports []resolve.ResolvedImport) Annotations {
	ann := Annotations{
		Path:    doc.Path(),
		Imports: make([]resolve.ResolvedImport, 0, len(imports)),
		Hovers:  make([]Hover, 0, len(imports)),
		Links:   make([]Link, 0, len(imports)),
	}
	for _, ri := range imports {
		stmt := ri.Occurrence.Statement
		spec := ri.Occurrence.Span
		ann.Imports = append(ann.Imports, ri)
		ann.Hovers = append(ann.Hovers, Hover{
			Range: doc.RangeOf(stmt.Start, stmt.End),
			Text:  ri.HoverText,
		})
		ann.Links = append(ann.Links, Link{
			Range:  doc.RangeOf(spec.Start, spec.End),
			Target: ri.Target(),
		})
	}
	return ann
}
