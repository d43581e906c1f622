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

	"bennypowers.dev/aliaslink/fs"
)

// Probe looks for the file a candidate path refers to. It tries, in order:
// the candidate itself (when it is a regular file), the candidate with each
// extension appended, and an index file with each extension inside the
// candidate directory. The first existing file wins.
func Probe(fsys fs.FileSystem, candidate string, extensions []string) (string, bool) {
	for _, p := range ProbePaths(candidate, extensions) {
		if fs.IsFile(fsys, p) {
			return p, true
		}
	}
	return "", false
}

// ProbePaths lists the paths Probe checks, in order.
func ProbePaths(candidate string, extensions []string) []string {
	paths := make([]string, 0, 1+2*len(extensions))
	paths = append(paths, candidate)
	for _, ext := range extensions {
		paths = append(paths, candidate+ext)
	}
	for _, ext := range extensions {
		paths = append(paths, filepath.Join(candidate, "index"+ext))
	}
	return paths
}
