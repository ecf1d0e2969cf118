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

package component_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copyseeds/pkg/component"
)

// writeFiles creates empty files named names inside dir.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

// 🧪 TestIndex tests building the availability map
func TestIndex(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  component.Availability
	}{
		{
			name: "empty_directory",
			want: component.Availability{},
		},
		{
			name:  "plain_component",
			files: []string{"button.svelte"},
			want:  component.Availability{"button": "button.svelte"},
		},
		{
			name:  "internal_component_has_alias",
			files: []string{"_icon.svelte"},
			want: component.Availability{
				"_icon": "_icon.svelte",
				"icon":  "_icon.svelte",
			},
		},
		{
			name:  "ignores_other_extensions",
			files: []string{"button.svelte", "__core.ts", "__style.ts", "README.md"},
			want:  component.Availability{"button": "button.svelte"},
		},
		{
			name:  "mixed",
			files: []string{"button.svelte", "_icon.svelte", "toggle.svelte"},
			want: component.Availability{
				"button": "button.svelte",
				"_icon":  "_icon.svelte",
				"icon":   "_icon.svelte",
				"toggle": "toggle.svelte",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)

			got, err := component.Index(dir)
			require.NoError(t, err, "indexing should succeed")
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestIndexKeyCounts checks one key per plain file and two per internal file
func TestIndexKeyCounts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.svelte", "b.svelte", "_c.svelte", "_d.svelte")

	avail, err := component.Index(dir)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, file := range avail {
		counts[file]++
	}
	assert.Equal(t, map[string]int{
		"a.svelte":  1,
		"b.svelte":  1,
		"_c.svelte": 2,
		"_d.svelte": 2,
	}, counts)
}

func TestIndexSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "button.svelte")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.svelte"), 0755))

	avail, err := component.Index(dir)
	require.NoError(t, err)
	assert.Equal(t, component.Availability{"button": "button.svelte"}, avail)
}

func TestIndexMissingDirectory(t *testing.T) {
	_, err := component.Index(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "button", component.ComponentName("button.svelte"))
	assert.Equal(t, "icon", component.ComponentName("_icon.svelte"))
}

func TestAvailabilityHelpers(t *testing.T) {
	avail := component.Availability{
		"button": "button.svelte",
		"_icon":  "_icon.svelte",
		"icon":   "_icon.svelte",
	}

	assert.Equal(t, []string{"_icon.svelte", "button.svelte"}, avail.Files())
	assert.Equal(t, []string{"button", "icon"}, avail.Selectable())

	file, ok := avail.Lookup("button.svelte")
	assert.True(t, ok, "extension should be tolerated")
	assert.Equal(t, "button.svelte", file)

	_, ok = avail.Lookup("missing")
	assert.False(t, ok)
}
