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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copyseeds/pkg/component"
	"github.com/walteh/copyseeds/pkg/log"
	"github.com/walteh/copyseeds/pkg/operation"
	"github.com/walteh/copyseeds/pkg/testutils"
)

func newExecutor(t *testing.T, root, dest string, mutate func(*operation.Options)) (*operation.Executor, *recordingReporter) {
	t.Helper()
	reporter := &recordingReporter{}
	opts := operation.Options{
		Config:    baseConfig(root, dest),
		SourceDir: seedSource(t),
		Reporter:  reporter,
	}
	if mutate != nil {
		mutate(&opts)
	}
	exec, err := operation.NewExecutor(opts)
	require.NoError(t, err)
	return exec, reporter
}

// 🧪 TestCopy tests copying components with their support files
func TestCopy(t *testing.T) {
	tests := []struct {
		name    string
		noStyle bool
		files   []string
		want    []string
	}{
		{
			name:  "internal_component_with_style",
			files: []string{"_icon.svelte"},
			want:  []string{"__core.ts", "__style.ts", "_icon.svelte"},
		},
		{
			name:    "no_style",
			noStyle: true,
			files:   []string{"button.svelte"},
			want:    []string{"__core.ts", "button.svelte"},
		},
		{
			name:  "several_components",
			files: []string{"button.svelte", "_icon.svelte"},
			want:  []string{"__core.ts", "__style.ts", "_icon.svelte", "button.svelte"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			root, dest := project(t)
			exec, reporter := newExecutor(t, root, dest, func(o *operation.Options) {
				o.Config.NoStyle = tt.noStyle
			})

			res, err := exec.Copy(ctx, tt.files)
			require.NoError(t, err)

			got := component.NewLocalSet()
			for name := range testutils.ReadDir(t, dest) {
				got[name] = struct{}{}
			}
			assert.Equal(t, tt.want, got.Sorted(), "destination should hold exactly the copied files")
			assert.ElementsMatch(t, tt.want, res.Copied)
			assert.ElementsMatch(t, tt.want, reporter.changed(log.FileAdded))
			assert.Empty(t, reporter.infos, "no skip summary without skips")
		})
	}
}

func TestCopyUsageReferencesFirstFile(t *testing.T) {
	root, dest := project(t)
	exec, reporter := newExecutor(t, root, dest, nil)

	_, err := exec.Copy(testutils.Context(t), []string{"_icon.svelte", "button.svelte"})
	require.NoError(t, err)

	require.Len(t, reporter.usages, 1)
	assert.Contains(t, reporter.usages[0].snippet, `import Icon from "$lib/_svseeds/_icon.svelte";`)
	assert.Contains(t, reporter.usages[0].snippet, "icon")
}

func TestCopyNoOverwrite(t *testing.T) {
	ctx := testutils.Context(t)
	root, dest := project(t)
	testutils.WriteFiles(t, dest, map[string]string{"button.svelte": "sentinel"})

	exec, reporter := newExecutor(t, root, dest, func(o *operation.Options) {
		o.Config.NoOverwrite = true
	})

	res, err := exec.Copy(ctx, []string{"button.svelte"})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "button.svelte"))
	require.NoError(t, err)
	assert.Equal(t, "sentinel", string(content), "existing file must not be modified")

	assert.Equal(t, []string{"button.svelte"}, res.Skipped)
	assert.ElementsMatch(t, []string{"__core.ts", "__style.ts"}, res.Copied)
	assert.Equal(t, []string{"Skipped 1 existing file"}, reporter.infos)
}

func TestCopyOverwrites(t *testing.T) {
	ctx := testutils.Context(t)
	root, dest := project(t)
	testutils.WriteFiles(t, dest, map[string]string{"button.svelte": "sentinel", "__core.ts": "export const core = true;"})

	exec, reporter := newExecutor(t, root, dest, nil)

	res, err := exec.Copy(ctx, []string{"button.svelte"})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "button.svelte"))
	require.NoError(t, err)
	assert.Equal(t, "<button />", string(content))

	assert.Equal(t, []string{"button.svelte", "__style.ts"}, res.Copied)
	assert.Equal(t, []string{"__core.ts"}, res.Unchanged)
	assert.Equal(t, []string{"button.svelte"}, reporter.changed(log.FileUpdated))
	assert.Empty(t, res.Skipped)
}

func TestCopyMissingSourceFile(t *testing.T) {
	root, dest := project(t)
	exec, _ := newExecutor(t, root, dest, nil)

	_, err := exec.Copy(testutils.Context(t), []string{"nope.svelte"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.svelte")
}

// 🧪 TestUpdate tests that only local files are refreshed
func TestUpdate(t *testing.T) {
	ctx := testutils.Context(t)
	root, dest := project(t)
	testutils.WriteFiles(t, dest, map[string]string{
		"button.svelte": "old button",
		"__core.ts":     "old core",
	})

	exec, reporter := newExecutor(t, root, dest, nil)
	local := component.NewLocalSet("button.svelte", "__core.ts")

	res, err := exec.Update(ctx, []string{"button.svelte", "_icon.svelte"}, local)
	require.NoError(t, err)

	assert.Equal(t, []string{"button.svelte", "__core.ts"}, res.Updated)
	assert.Equal(t, map[string]string{
		"button.svelte": "<button />",
		"__core.ts":     "export const core = true;",
	}, testutils.ReadDir(t, dest), "files not present locally must not be created")
	assert.Len(t, reporter.success, 1)
}

// 🧪 TestRemove tests removing selected local components
func TestRemove(t *testing.T) {
	ctx := testutils.Context(t)
	root, dest := project(t)
	testutils.WriteFiles(t, dest, map[string]string{
		"button.svelte": "b",
		"_icon.svelte":  "i",
		"__core.ts":     "c",
	})

	exec, reporter := newExecutor(t, root, dest, nil)
	local := component.NewLocalSet("button.svelte", "_icon.svelte", "__core.ts")

	res, err := exec.Remove(ctx, []string{"button.svelte", "toggle.svelte"}, local)
	require.NoError(t, err)

	assert.Equal(t, []string{"button.svelte"}, res.Removed)
	assert.Equal(t, map[string]string{"_icon.svelte": "i", "__core.ts": "c"}, testutils.ReadDir(t, dest))
	assert.Equal(t, []string{"button.svelte"}, reporter.changed(log.FileDeleted))
}

// 🧪 TestUninstall tests removing every tracked file and the directory
func TestUninstall(t *testing.T) {
	t.Run("only_tracked_files", func(t *testing.T) {
		ctx := testutils.Context(t)
		root, dest := project(t)
		testutils.WriteFiles(t, dest, map[string]string{"button.svelte": "b", "__core.ts": "c", "__style.ts": "s"})

		exec, _ := newExecutor(t, root, dest, nil)
		res, err := exec.Uninstall(ctx, component.NewLocalSet("button.svelte", "__core.ts", "__style.ts"))
		require.NoError(t, err)

		assert.Len(t, res.Removed, 3)
		assert.True(t, res.DirRemoved)
		assert.NoDirExists(t, dest)
	})

	t.Run("untracked_file_keeps_directory", func(t *testing.T) {
		ctx := testutils.Context(t)
		root, dest := project(t)
		testutils.WriteFiles(t, dest, map[string]string{"button.svelte": "b", "__core.ts": "c", "notes.md": "mine"})

		exec, reporter := newExecutor(t, root, dest, nil)
		res, err := exec.Uninstall(ctx, component.NewLocalSet("button.svelte", "__core.ts"))
		require.NoError(t, err)

		assert.False(t, res.DirRemoved)
		assert.Equal(t, map[string]string{"notes.md": "mine"}, testutils.ReadDir(t, dest))
		assert.Len(t, reporter.warnings, 1)
	})
}

func TestUsageSnippet(t *testing.T) {
	tests := []struct {
		file string
		dir  string
		want string
	}{
		{file: "button.svelte", dir: "$lib/_svseeds", want: "import Button from \"$lib/_svseeds/button.svelte\";\n\n<Button />"},
		{file: "_icon.svelte", dir: "$lib/ui", want: "import Icon from \"$lib/ui/_icon.svelte\";\n\n<Icon />"},
		{file: "date-picker.svelte", dir: "./components", want: "import DatePicker from \"./components/date-picker.svelte\";\n\n<DatePicker />"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, operation.UsageSnippet(tt.file, tt.dir))
		})
	}
}

func TestNewExecutorRequiresReporter(t *testing.T) {
	_, err := operation.NewExecutor(operation.Options{DestDir: t.TempDir()})
	require.Error(t, err)
}
