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

package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/copyseeds/pkg/component"
	"github.com/walteh/copyseeds/pkg/config"
	"github.com/walteh/copyseeds/pkg/log"
	"github.com/walteh/copyseeds/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrPrecondition is wrapped when a run cannot start: a missing destination,
// an empty selection or an unusable scratch directory.
var ErrPrecondition = errors.Base("precondition failed")

// 📢 Reporter receives user-facing progress from a run.
type Reporter interface {
	LogFileChange(change log.FileChange)
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Usage(title, snippet string)
}

// 🔧 Options configures an Executor
type Options struct {
	// Config is the resolved run configuration
	Config config.Config
	// SourceDir holds the fetched component files
	SourceDir string
	// DestDir is the destination, Config.Dir when empty
	DestDir string
	// Reporter receives file changes and summaries
	Reporter Reporter
}

// 📋 Result lists the files touched by one mode.
type Result struct {
	Copied     []string
	Updated    []string
	Unchanged  []string
	Skipped    []string
	Removed    []string
	DirRemoved bool
}

// ⚙️ Executor performs the file system mutation for a mode.
type Executor struct {
	cfg      config.Config
	source   string
	dest     *status.Manager
	reporter Reporter
}

// 🏭 NewExecutor creates an executor with the given options
func NewExecutor(opts Options) (*Executor, error) {
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	dest := opts.DestDir
	if dest == "" {
		dest = opts.Config.Dir
	}
	if dest == "" {
		return nil, errors.Errorf("destination directory is required")
	}
	return &Executor{
		cfg:      opts.Config,
		source:   opts.SourceDir,
		dest:     status.New(dest),
		reporter: opts.Reporter,
	}, nil
}

// supportFiles returns the support files copied alongside every selection.
func (e *Executor) supportFiles() []string {
	if e.cfg.NoStyle {
		return []string{component.CoreFile}
	}
	return []string{component.CoreFile, component.StyleFile}
}

// 📦 Copy copies files and the support files into the destination, creating it
// when needed. With NoOverwrite, files already in the destination are skipped.
func (e *Executor) Copy(ctx context.Context, files []string) (Result, error) {
	var res Result

	if e.source == "" {
		return res, errors.Errorf("%w: source directory is required", ErrPrecondition)
	}
	if err := e.dest.CreateDir(ctx); err != nil {
		return res, errors.Errorf("creating %s: %w", e.dest.Dir(), err)
	}

	for _, name := range withSupport(files, e.supportFiles()) {
		if e.cfg.NoOverwrite {
			exists, err := e.dest.FileExists(ctx, name)
			if err != nil {
				return res, errors.Errorf("checking %s: %w", name, err)
			}
			if exists {
				res.Skipped = append(res.Skipped, name)
				e.reporter.LogFileChange(log.FileChange{Type: log.FileSkipped, Path: name, Description: "already exists"})
				continue
			}
		}

		st, err := e.install(ctx, name)
		if err != nil {
			return res, err
		}
		res.record(name, st, false)
	}

	if len(res.Skipped) > 0 {
		e.reporter.Info(fmt.Sprintf("Skipped %d existing %s", len(res.Skipped), plural(len(res.Skipped), "file")))
	}
	e.reporter.Success(fmt.Sprintf("Copied %d %s to %s", len(files), plural(len(files), "component"), e.displayDir()))

	if len(files) > 0 {
		e.reporter.Usage("Usage", UsageSnippet(files[0], e.importDir()))
	}

	return res, nil
}

// 🔄 Update overwrites the selected files that are present locally, along
// with the support files already in the destination.
func (e *Executor) Update(ctx context.Context, files []string, local component.LocalSet) (Result, error) {
	var res Result

	targets := []string{}
	for _, name := range files {
		if local.Has(name) {
			targets = append(targets, name)
		}
	}
	for _, name := range component.SupportFiles {
		if local.Has(name) {
			targets = append(targets, name)
		}
	}

	for _, name := range dedupe(targets) {
		st, err := e.install(ctx, name)
		if err != nil {
			return res, err
		}
		res.record(name, st, true)
	}

	e.reporter.Success(fmt.Sprintf("Updated %d %s in %s", len(res.Updated)+len(res.Unchanged), plural(len(res.Updated)+len(res.Unchanged), "file"), e.displayDir()))
	return res, nil
}

// 🗑️ Remove deletes the selected files that are present locally. Support
// files stay in place.
func (e *Executor) Remove(ctx context.Context, files []string, local component.LocalSet) (Result, error) {
	var res Result

	for _, name := range dedupe(files) {
		if !local.Has(name) {
			continue
		}
		if err := e.delete(ctx, name); err != nil {
			return res, err
		}
		res.Removed = append(res.Removed, name)
	}

	e.reporter.Success(fmt.Sprintf("Removed %d %s from %s", len(res.Removed), plural(len(res.Removed), "component"), e.displayDir()))
	return res, nil
}

// 🧹 Uninstall deletes every tracked local file, then the destination when
// nothing else is left in it.
func (e *Executor) Uninstall(ctx context.Context, local component.LocalSet) (Result, error) {
	var res Result

	for _, name := range local.Sorted() {
		if err := e.delete(ctx, name); err != nil {
			return res, err
		}
		res.Removed = append(res.Removed, name)
	}

	removed, err := e.dest.RemoveDirIfEmpty(ctx)
	if err != nil {
		return res, errors.Errorf("removing %s: %w", e.dest.Dir(), err)
	}
	res.DirRemoved = removed

	if removed {
		e.reporter.Success(fmt.Sprintf("Uninstalled %d %s and removed %s", len(res.Removed), plural(len(res.Removed), "file"), e.displayDir()))
	} else {
		e.reporter.Success(fmt.Sprintf("Uninstalled %d %s", len(res.Removed), plural(len(res.Removed), "file")))
		e.reporter.Warning(fmt.Sprintf("%s still contains untracked files and was kept", e.displayDir()))
	}
	return res, nil
}

// install copies one file from the source into the destination.
func (e *Executor) install(ctx context.Context, name string) (status.FileStatus, error) {
	content, err := os.ReadFile(filepath.Join(e.source, name))
	if err != nil {
		return status.StatusUnknown, errors.Errorf("reading %s: %w", name, err)
	}

	st, err := e.dest.Compare(ctx, name, content)
	if err != nil {
		return status.StatusUnknown, errors.Errorf("comparing %s: %w", name, err)
	}

	switch st {
	case status.StatusUnchanged:
		e.reporter.LogFileChange(log.FileChange{Type: log.FileUnchanged, Path: name})
		return st, nil
	case status.StatusNew:
		e.reporter.LogFileChange(log.FileChange{Type: log.FileAdded, Path: name})
	default:
		e.reporter.LogFileChange(log.FileChange{Type: log.FileUpdated, Path: name})
	}

	if err := e.dest.WriteFileAtomic(ctx, name, content); err != nil {
		return status.StatusUnknown, errors.Errorf("copying %s: %w", name, err)
	}
	return st, nil
}

func (e *Executor) delete(ctx context.Context, name string) error {
	if err := e.dest.DeleteFile(ctx, name); err != nil {
		return errors.Errorf("removing %s: %w", name, err)
	}
	e.reporter.LogFileChange(log.FileChange{Type: log.FileDeleted, Path: name})
	zerolog.Ctx(ctx).Debug().Str("file", name).Msg("removed file")
	return nil
}

func (r *Result) record(name string, st status.FileStatus, update bool) {
	switch {
	case st == status.StatusUnchanged:
		r.Unchanged = append(r.Unchanged, name)
	case update:
		r.Updated = append(r.Updated, name)
	default:
		r.Copied = append(r.Copied, name)
	}
}

// displayDir returns the destination relative to the project root when possible.
func (e *Executor) displayDir() string {
	if e.cfg.Root == "" {
		return e.dest.Dir()
	}
	rel, err := filepath.Rel(e.cfg.Root, e.dest.Dir())
	if err != nil || strings.HasPrefix(rel, "..") {
		return e.dest.Dir()
	}
	return filepath.ToSlash(rel)
}

// importDir returns the import path of the destination, using the SvelteKit
// "$lib" alias for directories under src/lib.
func (e *Executor) importDir() string {
	dir := e.displayDir()
	switch {
	case dir == "src/lib":
		return "$lib"
	case strings.HasPrefix(dir, "src/lib/"):
		return "$lib/" + strings.TrimPrefix(dir, "src/lib/")
	case filepath.IsAbs(dir):
		return filepath.ToSlash(dir)
	default:
		return "./" + dir
	}
}

// 💡 UsageSnippet returns an example import of file from importDir.
func UsageSnippet(file, importDir string) string {
	ident := identifier(component.ComponentName(file))
	return fmt.Sprintf("import %s from \"%s/%s\";\n\n<%s />", ident, importDir, file, ident)
}

// identifier turns "date-picker" into "DatePicker".
func identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Component"
	}
	return b.String()
}

func withSupport(files, support []string) []string {
	all := make([]string, 0, len(files)+len(support))
	all = append(all, files...)
	all = append(all, support...)
	return dedupe(all)
}

func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
