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

// Package logging provides the slog-backed logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger implements resolve.Logger on top of log/slog.
type Logger struct {
	logger *slog.Logger
	level  slog.Level
}

// ParseLevel maps a level name to a slog level. Unknown names give warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a Logger writing text records at or above level to dest.
// A nil dest writes to stderr.
func New(level string, dest io.Writer) *Logger {
	if dest == nil {
		dest = os.Stderr
	}
	logLevel := ParseLevel(level)
	handler := slog.NewTextHandler(dest, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// CLI output does not need timestamps
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
	return &Logger{logger: slog.New(handler), level: logLevel}
}

// Warning implements resolve.Logger.
func (l *Logger) Warning(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Debug implements resolve.Logger.
func (l *Logger) Debug(format string, args ...any) {
	if l.level > slog.LevelDebug {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Slog returns the underlying slog logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}
