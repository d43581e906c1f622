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

// Package output renders annotation results for aliaslink CLI commands and
// reports errors to the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"bennypowers.dev/aliaslink/fs"
	"bennypowers.dev/aliaslink/session"
)

// Output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatText, FormatJSON, FormatNDJSON}

// ValidateFormat checks a --format value.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatNDJSON:
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(Formats, ", "))
	}
}

// Result is the annotations of one file, or the error that stopped its pass.
type Result struct {
	session.Annotations
	Error string `json:"error,omitempty"`
}

// Render formats results. A single JSON result is an object; several are an
// array.
func Render(results []Result, format string) (string, error) {
	switch format {
	case FormatJSON:
		var v any = results
		if len(results) == 1 {
			v = results[0]
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal results: %w", err)
		}
		return string(out), nil
	case FormatNDJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		for _, r := range results {
			if err := encoder.Encode(r); err != nil {
				return "", fmt.Errorf("failed to encode result for %s: %w", r.Path, err)
			}
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	case FormatText:
		return renderText(results), nil
	default:
		return "", ValidateFormat(format)
	}
}

// renderText writes one block per file:
//
//	src/main.js
//	  1:17  @app/foo -> /ws/src/app/foo.ts  (@app/*)
func renderText(results []Result) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Path)
		b.WriteByte('\n')
		if r.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", r.Error)
			continue
		}
		if len(r.Imports) == 0 {
			b.WriteString("  no aliased imports\n")
			continue
		}
		for j, ri := range r.Imports {
			start := r.Links[j].Range.Start
			missing := ""
			if !ri.Found {
				missing = "  [missing]"
			}
			fmt.Fprintf(&b, "  %d:%d  %s -> %s  (%s)%s\n",
				start.Line+1, start.Character+1,
				ri.Occurrence.Specifier, ri.Path, ri.Alias, missing)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Results renders results and writes them to stdout, or to the file named
// by viper's "output" key when set.
func Results(osfs fs.FileSystem, results []Result, format string) error {
	out, err := Render(results, format)
	if err != nil {
		return err
	}
	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, []byte(out+"\n"), 0644)
	}
	fmt.Println(out)
	return nil
}

// Reporter prints errors and warnings to a terminal in color. It implements
// session.Reporter.
type Reporter struct {
	mu   sync.Mutex
	w    io.Writer
	err  *color.Color
	warn *color.Color
}

// NewReporter creates a Reporter writing to w, or to stderr when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = color.Error
	}
	return &Reporter{
		w:    w,
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
	}
}

// Report implements session.Reporter.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.err.Fprint(r.w, "error: ")
	_, _ = fmt.Fprintln(r.w, err)
}

// Warn prints a warning line.
func (r *Reporter) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.warn.Fprint(r.w, "warning: ")
	_, _ = fmt.Fprintf(r.w, format+"\n", args...)
}
