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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"bennypowers.dev/aliaslink/document"
	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/internal/cli"
	"bennypowers.dev/aliaslink/resolve"
	"bennypowers.dev/aliaslink/session"
	"bennypowers.dev/aliaslink/settings"
)

// Handler turns tool calls into resolution passes. Each call runs its own
// pass, so calls share no state.
type Handler struct {
	fs       fs.FileSystem
	root     string
	settings settings.Source
	logger   resolve.Logger
}

// NewHandler creates a Handler for the workspace at root. logger may be nil.
func NewHandler(fsys fs.FileSystem, root string, src settings.Source, logger resolve.Logger) *Handler {
	return &Handler{
		fs:       fsys,
		root:     root,
		settings: src,
		logger:   logger,
	}
}

// ResolveImports handles the resolve_imports tool.
func (h *Handler) ResolveImports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	root := h.rootFor(req.GetString("root", ""))
	ann, err := h.annotate(h.abs(file, root), root, req.GetString("language", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(ann, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal annotations: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// Hover handles the hover tool.
func (h *Handler) Hover(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	line, err := req.RequireInt("line")
	if err != nil {
		return mcp.NewToolResultError("line is required"), nil
	}
	character, err := req.RequireInt("character")
	if err != nil {
		return mcp.NewToolResultError("character is required"), nil
	}
	root := h.rootFor(req.GetString("root", ""))

	s := h.session(root)
	doc, err := cli.Open(h.fs, h.abs(file, root), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.SetActive(doc); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hover, ok := s.Hovers().At(document.Position{Line: line, Character: character})
	if !ok {
		return mcp.NewToolResultText(""), nil
	}
	return mcp.NewToolResultText(hover.Text), nil
}

// ResolveSpecifier handles the resolve_specifier tool.
func (h *Handler) ResolveSpecifier(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	specifier, err := req.RequireString("specifier")
	if err != nil {
		return mcp.NewToolResultError("specifier is required"), nil
	}
	root := h.rootFor(req.GetString("root", ""))
	from := req.GetString("from", "")
	if from != "" {
		from = h.abs(from, root)
	}

	cfg := h.settings.Settings()
	resolver, err := cfg.Resolver(h.fs, h.logger)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := session.LoadTable(h.fs, resolver, cfg.TSConfigPath, from, root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ri, ok := resolver.ResolveSpecifier(specifier, table, root)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no alias in %s matches %q", table.Path, specifier)), nil
	}
	out, err := json.MarshalIndent(ri, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (h *Handler) annotate(path, root, languageID string) (session.Annotations, error) {
	doc, err := cli.Open(h.fs, path, languageID)
	if err != nil {
		return session.Annotations{}, err
	}
	return h.session(root).SetActive(doc)
}

func (h *Handler) session(root string) *session.Session {
	return session.New(session.Config{
		FS:        h.fs,
		Workspace: session.Folders{root},
		Settings:  h.settings,
		Logger:    h.logger,
	})
}

func (h *Handler) rootFor(root string) string {
	if root == "" {
		return h.root
	}
	return filepath.Clean(root)
}

func (h *Handler) abs(path, root string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
