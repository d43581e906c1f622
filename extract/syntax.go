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
	"embed"
	"fmt"
	"iter"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

//go:embed queries/*/*.scm
var queryFiles embed.FS

var typescript = ts.NewLanguage(tsTypescript.LanguageTypescript())

// Parser pool for reuse.
var tsParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(typescript); err != nil {
			panic("failed to set TypeScript language: " + err.Error())
		}
		return parser
	},
}

func getTSParser() *ts.Parser {
	return tsParserPool.Get().(*ts.Parser)
}

func putTSParser(p *ts.Parser) {
	p.Reset()
	tsParserPool.Put(p)
}

// Global imports query, compiled once.
var (
	importsQuery     *ts.Query
	importsQueryOnce sync.Once
	importsQueryErr  error
)

func loadImportsQuery() (*ts.Query, error) {
	importsQueryOnce.Do(func() {
		data, err := queryFiles.ReadFile("queries/typescript/imports.scm")
		if err != nil {
			importsQueryErr = fmt.Errorf("failed to read imports query: %w", err)
			return
		}
		query, qerr := ts.NewQuery(typescript, string(data))
		if qerr != nil {
			importsQueryErr = fmt.Errorf("failed to parse imports query: %w", qerr)
			return
		}
		importsQuery = query
	})
	return importsQuery, importsQueryErr
}

// Syntax is the tree-sitter extractor. It parses the text with the
// TypeScript grammar, so specifier-shaped strings inside comments and
// template literals are not reported.
type Syntax struct {
	query *ts.Query
}

// NewSyntax creates a syntax extractor. It fails only if the embedded query
// cannot be compiled against the grammar.
func NewSyntax() (*Syntax, error) {
	query, err := loadImportsQuery()
	if err != nil {
		return nil, err
	}
	return &Syntax{query: query}, nil
}

// Extract implements Extractor.
func (s *Syntax) Extract(text string) iter.Seq[Occurrence] {
	return lazy(func() []Occurrence { return s.scan([]byte(text)) })
}

func (s *Syntax) scan(content []byte) []Occurrence {
	parser := getTSParser()
	defer putTSParser(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	var found []Occurrence
	matches := cursor.Matches(s.query, tree.RootNode(), content)
	captureNames := s.query.CaptureNames()

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var occ Occurrence
		var statement *ts.Node
		var callee string
		for _, capture := range match.Captures {
			node := capture.Node
			switch captureNames[capture.Index] {
			case "import.spec":
				occ.Kind = Static
				occ.Specifier = node.Utf8Text(content)
				occ.Span = nodeSpan(&node)
			case "reexport.spec":
				occ.Kind = Reexport
				occ.Specifier = node.Utf8Text(content)
				occ.Span = nodeSpan(&node)
			case "dynamic.spec":
				occ.Kind = Dynamic
				occ.Specifier = node.Utf8Text(content)
				occ.Span = nodeSpan(&node)
			case "require.spec":
				occ.Kind = Require
				occ.Specifier = node.Utf8Text(content)
				occ.Span = nodeSpan(&node)
			case "require.callee":
				callee = node.Utf8Text(content)
			case "import.statement", "reexport.statement", "dynamic.statement", "require.statement":
				statement = &node
			}
		}
		if occ.Specifier == "" || statement == nil {
			continue
		}
		if occ.Kind == Require && callee != "require" {
			continue
		}

		occ.Statement = nodeSpan(statement)
		switch occ.Kind {
		case Static:
			clause := childOfKind(statement, "import_clause")
			if clause == nil {
				occ.Kind = SideEffect
			} else {
				occ.Binding = normalizeBinding(clause.Utf8Text(content))
			}
		case Reexport:
			if clause := childOfKind(statement, "export_clause", "namespace_export"); clause != nil {
				occ.Binding = normalizeBinding(clause.Utf8Text(content))
			} else {
				occ.Binding = "*"
			}
		case Require:
			// const x = require('y'): report the declaration
			if parent := statement.Parent(); parent != nil && parent.Kind() == "variable_declarator" {
				if name := parent.ChildByFieldName("name"); name != nil {
					occ.Binding = normalizeBinding(name.Utf8Text(content))
				}
				if decl := parent.Parent(); decl != nil {
					occ.Statement = Span{Start: int(decl.StartByte()), End: int(statement.EndByte())}
				}
			}
		}
		found = append(found, occ)
	}

	return collect(found)
}

func nodeSpan(node *ts.Node) Span {
	return Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}

func childOfKind(node *ts.Node, kinds ...string) *ts.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		for _, kind := range kinds {
			if child.Kind() == kind {
				return child
			}
		}
	}
	return nil
}
