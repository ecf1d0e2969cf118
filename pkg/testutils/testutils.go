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

// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Context returns a context carrying a logger that writes to t.
func Context(t testing.TB) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

// WriteFiles writes name → content pairs into dir, creating it when needed.
func WriteFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", name)
	}
}

// ReadDir returns name → content for every regular file directly in dir.
func ReadDir(t testing.TB, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "reading %s", dir)

	files := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		files[entry.Name()] = string(data)
	}
	return files
}

// Tarball builds a gzipped tarball with every file placed under prefix/,
// the layout produced by "npm pack" and GitHub archives.
func Tarball(t testing.TB, prefix string, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: prefix + "/", Typeflag: tar.TypeDir, Mode: 0755}))
	for _, name := range names {
		content := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     prefix + "/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// SeedPackage is the component package used across tests.
func SeedPackage() map[string]string {
	return map[string]string{
		"src/lib/_svseeds/button.svelte": "<button />",
		"src/lib/_svseeds/_icon.svelte":  "<svg />",
		"src/lib/_svseeds/__core.ts":     "export const core = true;",
		"src/lib/_svseeds/__style.ts":    "export const style = true;",
		"package.json":                   `{"name":"svseeds"}`,
	}
}
