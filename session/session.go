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

// Package session drives resolution passes for an editor-like host. A pass
// runs when a document becomes active, when the active document changes (if
// the activeChange setting is on) and when the configuration changes. Every
// pass clears the hover and link providers before repopulating them, so a
// failed pass leaves no stale annotations behind.
package session

import (
	"path/filepath"
	"strings"
	"sync"

	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/resolve"
	"bennypowers.dev/aliaslink/settings"
	"bennypowers.dev/aliaslink/tsconfig"
)

// Workspace locates workspace folders.
type Workspace interface {
	// Root returns the primary workspace root.
	Root() string
	// FolderFor returns the workspace folder containing path, or "".
	FolderFor(path string) string
}

// Folders is a Workspace made of fixed folders. The first folder is the
// root.
type Folders []string

// Root implements Workspace.
func (f Folders) Root() string {
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// FolderFor implements Workspace. The deepest folder containing path wins.
func (f Folders) FolderFor(path string) string {
	best := ""
	for _, folder := range f {
		rel, err := filepath.Rel(folder, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(folder) > len(best) {
			best = folder
		}
	}
	return best
}

// Reporter is the user-visible error channel.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

// Report implements Reporter.
func (f ReporterFunc) Report(err error) { f(err) }

// Config holds the collaborators of a Session.
type Config struct {
	FS        fs.FileSystem
	Workspace Workspace
	Settings  settings.Source
	// Logger may be nil.
	Logger resolve.Logger
	// Reporter may be nil.
	Reporter Reporter
}

// Session owns the hover and link providers of one host and the document
// that is currently active. Triggers are serialized: a pass runs to
// completion before the next one starts.
type Session struct {
	mu       sync.Mutex
	fs       fs.FileSystem
	ws       Workspace
	settings settings.Source
	logger   resolve.Logger
	reporter Reporter

	hovers *HoverProvider
	links  *LinkProvider

	active   Document
	last     Annotations
	reported string
}

// New creates a Session.
func New(cfg Config) *Session {
	return &Session{
		fs:       cfg.FS,
		ws:       cfg.Workspace,
		settings: cfg.Settings,
		logger:   cfg.Logger,
		reporter: cfg.Reporter,
		hovers:   NewHoverProvider(),
		links:    NewLinkProvider(),
	}
}

// Hovers returns the hover provider.
func (s *Session) Hovers() *HoverProvider { return s.hovers }

// Links returns the link provider.
func (s *Session) Links() *LinkProvider { return s.links }

// Active returns the active document, or nil.
func (s *Session) Active() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Annotations returns the result of the most recent pass.
func (s *Session) Annotations() Annotations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// SetActive makes doc the active document and resolves it.
func (s *Session) SetActive(doc Document) (Annotations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = doc
	return s.pass(doc)
}

// Changed records new text for doc. It resolves only when the activeChange
// setting is on and doc is the active document; otherwise the previous
// annotations are returned untouched.
func (s *Session) Changed(doc Document) (Annotations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.Path() != doc.Path() {
		return s.last, nil
	}
	s.active = doc
	if !s.settings.Settings().ActiveChange {
		return s.last, nil
	}
	return s.pass(doc)
}

// Reconfigure resolves the active document again, picking up new settings
// and config files.
func (s *Session) Reconfigure() (Annotations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return s.last, nil
	}
	return s.pass(s.active)
}

// pass runs one resolution pass. Callers hold s.mu.
func (s *Session) pass(doc Document) (Annotations, error) {
	s.hovers.Reset()
	s.links.Reset()
	s.last = Annotations{Path: doc.Path()}

	cfg := s.settings.Settings()
	filter := cfg.Filter()
	if !filter.Allows(doc.LanguageID()) {
		s.debug("Skipping %s: language %q is not enabled", doc.Path(), doc.LanguageID())
		return s.last, nil
	}

	resolver, err := cfg.Resolver(s.fs, s.logger)
	if err != nil {
		return s.last, s.fail(err)
	}

	root := s.ws.FolderFor(doc.Path())
	if root == "" {
		root = s.ws.Root()
	}
	if root == "" {
		root = filepath.Dir(doc.Path())
	}

	table, err := LoadTable(s.fs, resolver, cfg.TSConfigPath, doc.Path(), root)
	if err != nil {
		return s.last, s.fail(err)
	}
	s.debug("Using %s with %d aliases", table.Path, len(table.Aliases))

	ann := Annotate(doc, resolver.Resolve(doc, table, root, filter))
	s.hovers.Add(ann.Hovers...)
	s.links.Add(ann.Links...)
	s.last = ann
	s.reported = ""
	return ann, nil
}

// LoadTable locates and loads the alias table for a document under root:
// the explicit path first, then the workspace root, then the package root.
func LoadTable(fsys fs.FileSystem, r *resolve.Resolver, explicit, docPath, root string) (*tsconfig.Table, error) {
	configPath, err := tsconfig.Locate(fsys, tsconfig.Search{
		Explicit:      explicit,
		WorkspaceRoot: root,
		PackageRoot:   r.PackageRoot(docPath, root),
	})
	if err != nil {
		return nil, err
	}
	return tsconfig.Load(fsys, configPath)
}

// fail logs err and reports it, unless the previous pass already reported
// the same error.
func (s *Session) fail(err error) error {
	if s.logger != nil {
		s.logger.Warning("%v", err)
	}
	if msg := err.Error(); msg != s.reported {
		s.reported = msg
		if s.reporter != nil {
			s.reporter.Report(err)
		}
	}
	return err
}

func (s *Session) debug(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(format, args...)
	}
}
