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

package resolve

import (
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/packagejson"
	"bennypowers.dev/aliaslink/tsconfig"
)

// FindWorkspaceRoot walks up the directory tree to find the workspace root.
// Returns the nearest directory containing node_modules or .git, or startDir
// when neither is found.
func FindWorkspaceRoot(fsys fs.FileSystem, startDir string) string {
	dir := startDir
	for {
		for _, marker := range []string{"node_modules", ".git"} {
			if stat, err := fsys.Stat(filepath.Join(dir, marker)); err == nil && stat.IsDir() {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// FindPackageRoot finds the package-local directory that owns a document in
// a monorepo, for use as a fallback config location and probe root.
//
// When the package.json in workspaceRoot declares workspaces, the deepest
// ancestor of the document matching a workspace pattern and holding a config
// file wins. Next the document path is truncated after a boundary segment, so
// /ws/packages/ui/src/button.js gives /ws/packages/ui when that directory
// holds a config file. Otherwise the nearest ancestor of the document below
// workspaceRoot that holds a config file is used. Returns "" when there is
// none.
func FindPackageRoot(fsys fs.FileSystem, docPath, workspaceRoot string, boundaries []string) string {
	if docPath == "" {
		return ""
	}
	docDir := filepath.Dir(docPath)

	if dir := workspacePackage(fsys, docDir, workspaceRoot); dir != "" {
		return dir
	}
	if dir := truncateAtBoundary(docDir, workspaceRoot, boundaries); dir != "" && hasConfig(fsys, dir) {
		return dir
	}

	dir := docDir
	for {
		if workspaceRoot != "" && !within(dir, workspaceRoot) {
			return ""
		}
		if dir == filepath.Clean(workspaceRoot) {
			// The workspace root is the primary location, not a fallback
			return ""
		}
		if hasConfig(fsys, dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// workspacePackage returns the deepest ancestor of dir that is a workspace
// package of the manifest in root and holds a config file, or "".
func workspacePackage(fsys fs.FileSystem, dir, root string) string {
	if root == "" {
		return ""
	}
	pkg, err := packagejson.ParseFile(fsys, filepath.Join(root, packagejson.FileName))
	if err != nil || !pkg.HasWorkspaces() {
		return ""
	}
	root = filepath.Clean(root)
	for dir != root && within(dir, root) {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return ""
		}
		if pkg.IsWorkspace(filepath.ToSlash(rel)) && hasConfig(fsys, dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}

// truncateAtBoundary returns dir cut after the innermost "<boundary>/<name>"
// pair below root, or "" when dir has no such pair.
func truncateAtBoundary(dir, root string, boundaries []string) string {
	base := root
	if base == "" {
		base = filepath.VolumeName(dir) + string(filepath.Separator)
	}
	rel, err := filepath.Rel(base, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for i := len(segments) - 2; i >= 0; i-- {
		if slices.Contains(boundaries, segments[i]) && segments[i+1] != "" {
			return filepath.Join(append([]string{base}, segments[:i+2]...)...)
		}
	}
	return ""
}

func hasConfig(fsys fs.FileSystem, dir string) bool {
	for _, name := range tsconfig.FileNames {
		if fs.IsFile(fsys, filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && !strings.HasPrefix(rel, "..")
}
