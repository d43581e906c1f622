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

// Package server exposes alias resolution as MCP tools, so agents working in
// an editor can ask where an aliased import points.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bennypowers.dev/aliaslink/internal/version"
)

// New creates the MCP server and registers the tools of h.
func New(h *Handler) *server.MCPServer {
	s := server.NewMCPServer(
		"aliaslink",
		version.GetVersion(),
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("resolve_imports",
		mcp.WithDescription("Resolve the path-aliased imports of a JavaScript or TypeScript file. Returns JSON with one entry per aliased import: the specifier, the matched alias, the resolved file and the hover and link ranges."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path of the source file, absolute or relative to the workspace root"),
		),
		mcp.WithString("root",
			mcp.Description("Workspace root. Defaults to the server's workspace root"),
		),
		mcp.WithString("language",
			mcp.Description("Language identifier, e.g. javascript. Defaults to one derived from the file extension"),
		),
	), h.ResolveImports)

	s.AddTool(mcp.NewTool("hover",
		mcp.WithDescription("Return the alias annotation shown at a position of a file, if the position is inside an aliased import statement."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path of the source file, absolute or relative to the workspace root"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("Zero-based line"),
		),
		mcp.WithNumber("character",
			mcp.Required(),
			mcp.Description("Zero-based character offset in UTF-16 code units"),
		),
		mcp.WithString("root",
			mcp.Description("Workspace root. Defaults to the server's workspace root"),
		),
	), h.Hover)

	s.AddTool(mcp.NewTool("resolve_specifier",
		mcp.WithDescription("Resolve a single module specifier against the alias config that applies to a file."),
		mcp.WithString("specifier",
			mcp.Required(),
			mcp.Description("Module specifier, e.g. @app/foo"),
		),
		mcp.WithString("from",
			mcp.Description("File the specifier is imported from; selects the package-local config in a monorepo"),
		),
		mcp.WithString("root",
			mcp.Description("Workspace root. Defaults to the server's workspace root"),
		),
	), h.ResolveSpecifier)

	return s
}
