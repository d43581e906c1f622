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

	"bennypowers.dev/aliaslink/extract"
	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/tsconfig"
)

// Resolver resolves the aliased imports of a document. It holds no state
// between calls; every Resolve call returns a fresh slice.
type Resolver struct {
	fs         fs.FileSystem
	logger     Logger
	extractor  extract.Extractor
	extensions []string
	boundaries []string
}

// New creates a Resolver with the pattern extractor, the default extension
// list and the default package boundaries. logger may be nil.
func New(fs fs.FileSystem, logger Logger) *Resolver {
	return &Resolver{
		fs:         fs,
		logger:     logger,
		extractor:  extract.NewPattern(),
		extensions: DefaultExtensions,
		boundaries: DefaultPackageBoundaries,
	}
}

// WithExtractor returns a new Resolver that finds imports with e.
func (r *Resolver) WithExtractor(e extract.Extractor) *Resolver {
	return &Resolver{
		fs:         r.fs,
		logger:     r.logger,
		extractor:  e,
		extensions: r.extensions,
		boundaries: r.boundaries,
	}
}

// WithExtensions returns a new Resolver that probes the given extensions,
// in order.
func (r *Resolver) WithExtensions(extensions []string) *Resolver {
	return &Resolver{
		fs:         r.fs,
		logger:     r.logger,
		extractor:  r.extractor,
		extensions: extensions,
		boundaries: r.boundaries,
	}
}

// WithPackageBoundaries returns a new Resolver that recognizes the given
// directory names as monorepo package containers.
func (r *Resolver) WithPackageBoundaries(boundaries []string) *Resolver {
	return &Resolver{
		fs:         r.fs,
		logger:     r.logger,
		extractor:  r.extractor,
		extensions: r.extensions,
		boundaries: boundaries,
	}
}

// PackageRoot returns the monorepo package directory owning docPath, or "".
func (r *Resolver) PackageRoot(docPath, workspaceRoot string) string {
	return FindPackageRoot(r.fs, docPath, workspaceRoot, r.boundaries)
}

// Resolve extracts the imports of doc and resolves those whose specifier
// matches an alias of table. Relative specifiers and specifiers matching no
// alias are skipped. Results are in document order.
func (r *Resolver) Resolve(doc Document, table *tsconfig.Table, root string, filter LanguageFilter) []ResolvedImport {
	if !filter.Allows(doc.LanguageID()) {
		r.debug("Skipping %s: language %q is not enabled", doc.Path(), doc.LanguageID())
		return nil
	}
	if table.Empty() {
		return nil
	}

	roots := r.probeRoots(doc.Path(), table, root)
	extractor := extract.ForLanguage(doc.LanguageID(), r.extractor)

	var resolved []ResolvedImport
	for occ := range extractor.Extract(doc.Text()) {
		if occ.Relative() {
			r.debug("Skipping relative import %q", occ.Specifier)
			continue
		}
		alias, ok := table.Match(occ.Specifier)
		if !ok {
			r.debug("No alias matches %q", occ.Specifier)
			continue
		}
		path, found := r.resolveCandidate(alias.Rewrite(occ.Specifier), roots)
		if !found {
			r.debug("No file found for %q, using %s", occ.Specifier, path)
		}
		resolved = append(resolved, ResolvedImport{
			Occurrence: occ,
			Alias:      alias.Pattern,
			Path:       path,
			Found:      found,
			HoverText:  HoverText(alias.Pattern, path),
		})
	}
	return resolved
}

// ResolveSpecifier resolves a single specifier against table without a
// document. ok is false when the specifier is relative or matches no alias.
func (r *Resolver) ResolveSpecifier(specifier string, table *tsconfig.Table, root string) (ResolvedImport, bool) {
	occ := extract.Occurrence{Binding: specifier, Specifier: specifier}
	if specifier == "" || occ.Relative() {
		return ResolvedImport{}, false
	}
	alias, ok := table.Match(specifier)
	if !ok {
		return ResolvedImport{}, false
	}
	roots := r.probeRoots("", table, root)
	path, found := r.resolveCandidate(alias.Rewrite(specifier), roots)
	return ResolvedImport{
		Occurrence: occ,
		Alias:      alias.Pattern,
		Path:       path,
		Found:      found,
		HoverText:  HoverText(alias.Pattern, path),
	}, true
}

// probeRoots lists the directories candidates are resolved against: the
// workspace root, the baseUrl directory, the config directory, then the
// package root of docPath.
func (r *Resolver) probeRoots(docPath string, table *tsconfig.Table, root string) []string {
	roots := []string{filepath.Clean(root)}
	add := func(dir string) {
		if dir == "" {
			return
		}
		dir = filepath.Clean(dir)
		if !slices.Contains(roots, dir) {
			roots = append(roots, dir)
		}
	}
	add(table.BaseDir())
	if table.Path != "" {
		add(table.Dir())
	}
	add(r.PackageRoot(docPath, root))
	return roots
}

// resolveCandidate probes candidate under each root. When nothing exists,
// the unprobed candidate under the first root is returned.
func (r *Resolver) resolveCandidate(candidate string, roots []string) (string, bool) {
	if filepath.IsAbs(candidate) {
		if path, ok := Probe(r.fs, candidate, r.extensions); ok {
			return path, true
		}
		return filepath.Clean(candidate), false
	}
	for i, root := range roots {
		if path, ok := Probe(r.fs, filepath.Join(root, candidate), r.extensions); ok {
			if i > 0 {
				r.debug("Resolved %s from fallback root %s", candidate, root)
			}
			return path, true
		}
	}
	return filepath.Join(roots[0], candidate), false
}

func (r *Resolver) debug(format string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(format, args...)
	}
}
