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

package tsconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/tidwall/jsonc"

	"bennypowers.dev/aliaslink/fs"
)

// ParseError reports a config file that is not valid JSON once comments and
// trailing commas are stripped.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// header holds the fields read with encoding/json. paths is read separately
// so that its key order survives.
type header struct {
	Extends         json.RawMessage `json:"extends"`
	CompilerOptions struct {
		BaseURL string `json:"baseUrl"`
	} `json:"compilerOptions"`
}

// Parse reads a config document. path is recorded on the table and used in
// errors; it is not read. A document without compilerOptions.paths yields an
// empty table, not an error.
func Parse(data []byte, path string) (*Table, error) {
	table, _, err := parse(data, path)
	return table, err
}

func parse(data []byte, path string) (*Table, []string, error) {
	data = jsonc.ToJSON(data)

	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}

	aliases, err := orderedPaths(data)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}

	extends, err := extendsList(h.Extends)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}

	return &Table{
		Path:    path,
		BaseURL: h.CompilerOptions.BaseURL,
		Aliases: aliases,
		Files:   []string{path},
	}, extends, nil
}

// orderedPaths walks compilerOptions.paths in declaration order.
func orderedPaths(data []byte) ([]Alias, error) {
	var aliases []Alias
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		pattern, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("invalid paths key %q: %w", key, err)
		}
		alias := Alias{Pattern: pattern}
		switch dataType {
		case jsonparser.Array:
			_, err = jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
				if itemType != jsonparser.String {
					return
				}
				if target, perr := jsonparser.ParseString(item); perr == nil {
					alias.Targets = append(alias.Targets, target)
				}
			})
			if err != nil {
				return fmt.Errorf("invalid targets for %q: %w", pattern, err)
			}
		case jsonparser.String:
			// Not valid for TypeScript, but unambiguous
			target, perr := jsonparser.ParseString(value)
			if perr != nil {
				return fmt.Errorf("invalid target for %q: %w", pattern, perr)
			}
			alias.Targets = []string{target}
		default:
			return nil
		}
		if len(alias.Targets) > 0 {
			aliases = append(aliases, alias)
		}
		return nil
	}, "compilerOptions", "paths")

	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, nil
	}
	return aliases, err
}

// extendsList accepts both the string and the array form of "extends".
func extendsList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			return nil, nil
		}
		return []string{single}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("extends must be a string or an array of strings")
	}
	return many, nil
}

// Load reads the config at path and merges any configs it extends.
// Merging follows TypeScript: the child's baseUrl wins, child paths keys
// override base keys, and relative targets inherited from a base config are
// rebased so they stay correct from the child's directory.
func Load(fsys fs.FileSystem, path string) (*Table, error) {
	return load(fsys, path, map[string]bool{})
}

func load(fsys fs.FileSystem, path string, seen map[string]bool) (*Table, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	seen[filepath.Clean(path)] = true

	table, extends, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	// Later entries in an extends array take precedence over earlier ones.
	for i := len(extends) - 1; i >= 0; i-- {
		basePath := findExtended(fsys, table.Dir(), extends[i])
		if basePath == "" || seen[filepath.Clean(basePath)] {
			continue
		}
		base, err := load(fsys, basePath, seen)
		if err != nil {
			return nil, err
		}
		merge(table, base)
	}

	return table, nil
}

// findExtended resolves an extends reference: file paths relative to the
// config directory, with or without a .json suffix, and package names under
// node_modules.
func findExtended(fsys fs.FileSystem, dir, ref string) string {
	var candidates []string
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, ".") {
		p := ref
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		candidates = append(candidates, p, p+".json")
	} else {
		candidates = append(candidates,
			filepath.Join(dir, "node_modules", ref),
			filepath.Join(dir, "node_modules", ref, "tsconfig.json"),
			filepath.Join(dir, "node_modules", ref+".json"),
		)
	}
	for _, candidate := range candidates {
		if fs.IsFile(fsys, candidate) {
			return candidate
		}
	}
	return ""
}

// merge folds base into child.
func merge(child, base *Table) {
	child.Files = append(child.Files, base.Files...)
	if child.BaseURL == "" && base.BaseURL != "" {
		child.BaseURL = rebase(base.BaseURL, base.Dir(), child.Dir())
	}
	for _, alias := range base.Aliases {
		if slices.ContainsFunc(child.Aliases, func(a Alias) bool { return a.Pattern == alias.Pattern }) {
			continue
		}
		targets := make([]string, len(alias.Targets))
		for i, target := range alias.Targets {
			targets[i] = rebase(target, base.Dir(), child.Dir())
		}
		child.Aliases = append(child.Aliases, Alias{Pattern: alias.Pattern, Targets: targets})
	}
}

// rebase rewrites a path relative to fromDir so it is relative to toDir.
func rebase(p, fromDir, toDir string) string {
	if filepath.IsAbs(p) || fromDir == toDir {
		return p
	}
	abs := filepath.Join(fromDir, p)
	rel, err := filepath.Rel(toDir, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
