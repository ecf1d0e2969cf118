// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints user-facing messages and mirrors them to zerolog.
type UserLogger struct {
	log zerolog.Logger
}

// 🎨 FileChangeType represents the type of change made to a file
type FileChangeType int

const (
	FileAdded FileChangeType = iota
	FileUpdated
	FileUnchanged
	FileDeleted
	FileSkipped
)

// String returns a lowercase name for the change type.
func (t FileChangeType) String() string {
	switch t {
	case FileAdded:
		return "added"
	case FileUpdated:
		return "updated"
	case FileUnchanged:
		return "unchanged"
	case FileDeleted:
		return "deleted"
	case FileSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 🖼️ FileChange describes one file touched in the destination.
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
}

// 🎯 NewUserLogger creates a user logger backed by the context logger.
func NewUserLogger(ctx context.Context, debug bool) *UserLogger {
	if debug {
		pterm.EnableDebugMessages()
	}
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileChange logs a file change with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileAdded:
		prefix, action = "✨", "Added"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case FileUpdated:
		prefix, action = "🔄", "Updated"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case FileUnchanged:
		prefix, action = "•", "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case FileDeleted:
		prefix, action = "🗑️", "Deleted"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case FileSkipped:
		prefix, action = "⏭️", "Skipped"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		printer = &pterm.Info
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	u.log.Info().Str("file", change.Path).Stringer("change", change.Type).Msg(msg)
}

// Info prints an informational message.
func (u *UserLogger) Info(msg string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Msg(msg)
}

// Success prints a success message.
func (u *UserLogger) Success(msg string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
	u.log.Info().Msg(msg)
}

// Warning prints a non-fatal warning.
func (u *UserLogger) Warning(msg string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
	u.log.Warn().Msg(msg)
}

// Error prints a fatal error as a single line.
func (u *UserLogger) Error(err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err.Error())
	u.log.Error().Err(err).Msg("command failed")
}

// Usage prints a code snippet showing how to use an installed component.
func (u *UserLogger) Usage(title, snippet string) {
	pterm.DefaultBox.WithTitle(title).Println(snippet)
	u.log.Debug().Str("snippet", snippet).Msg(title)
}
