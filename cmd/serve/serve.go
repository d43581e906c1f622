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

// Package serve provides the serve command for aliaslink.
package serve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"bennypowers.dev/aliaslink/internal/cli"
	"bennypowers.dev/aliaslink/internal/server"
)

// Cmd is the serve cobra command that runs an MCP server on stdio.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve alias resolution as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout with the tools
resolve_imports, hover and resolve_specifier.`,
	Example: `  # Serve the current workspace
  aliaslink serve

  # Serve another workspace with debug logs on stderr
  aliaslink serve --root ~/src/app --log-level debug`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup()
	if err != nil {
		return err
	}
	s := server.New(server.NewHandler(env.FS, env.Root, env.Settings, env.Logger))
	fmt.Fprintf(os.Stderr, "aliaslink MCP server serving %s\n", env.Root)
	if err := mcpserver.ServeStdio(s); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
