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

package operation_test

import (
	"path/filepath"
	"testing"

	"github.com/walteh/copyseeds/pkg/config"
	"github.com/walteh/copyseeds/pkg/log"
	"github.com/walteh/copyseeds/pkg/testutils"
)

type usage struct {
	title   string
	snippet string
}

// recordingReporter captures everything a run reports.
type recordingReporter struct {
	changes  []log.FileChange
	infos    []string
	success  []string
	warnings []string
	usages   []usage
}

func (r *recordingReporter) LogFileChange(change log.FileChange) { r.changes = append(r.changes, change) }
func (r *recordingReporter) Info(msg string)                     { r.infos = append(r.infos, msg) }
func (r *recordingReporter) Success(msg string)                  { r.success = append(r.success, msg) }
func (r *recordingReporter) Warning(msg string)                  { r.warnings = append(r.warnings, msg) }
func (r *recordingReporter) Usage(title, snippet string) {
	r.usages = append(r.usages, usage{title: title, snippet: snippet})
}

func (r *recordingReporter) changed(typ log.FileChangeType) []string {
	var out []string
	for _, c := range r.changes {
		if c.Type == typ {
			out = append(out, c.Path)
		}
	}
	return out
}

// seedSource writes the standard component package and returns its component directory.
func seedSource(t *testing.T) string {
	t.Helper()
	pkg := t.TempDir()
	testutils.WriteFiles(t, pkg, testutils.SeedPackage())
	return filepath.Join(pkg, filepath.FromSlash(config.DefaultSourcePath))
}

// project returns a project root and its default destination directory.
func project(t *testing.T) (root, dest string) {
	t.Helper()
	root = t.TempDir()
	testutils.WriteFiles(t, root, map[string]string{"package.json": "{}"})
	return root, filepath.Join(root, filepath.FromSlash(config.DefaultDir))
}

func baseConfig(root, dest string) config.Config {
	return config.Config{
		Root:       root,
		Package:    config.DefaultPackage,
		SourcePath: config.DefaultSourcePath,
		Dir:        dest,
	}
}
