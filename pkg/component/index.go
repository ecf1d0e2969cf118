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

// Package component indexes the components offered by a fetched package and
// reconciles them with what is already present in a destination directory.
package component

import (
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

const (
	// Extension marks a file as a selectable component.
	Extension = ".svelte"
	// InternalPrefix marks a component as internal support for other components.
	InternalPrefix = "_"
	// CoreFile is always copied alongside components.
	CoreFile = "__core.ts"
	// StyleFile is copied alongside components unless styles are disabled.
	StyleFile = "__style.ts"
)

// SupportFiles are tracked in every destination even though they are not components.
var SupportFiles = []string{CoreFile, StyleFile}

// Availability maps a component name to the file that provides it.
//
// An internal file such as "_icon.svelte" is reachable under both "_icon" and
// "icon"; both keys always point at the same file.
type Availability map[string]string

// 📦 Index builds the availability map for the components found in remoteDir.
func Index(remoteDir string) (Availability, error) {
	info, err := os.Stat(remoteDir)
	if err != nil {
		return nil, errors.Errorf("reading component source: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("component source %s is not a directory", remoteDir)
	}

	matches, err := doublestar.Glob(os.DirFS(remoteDir), "*"+Extension, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("listing components: %w", err)
	}

	avail := make(Availability, len(matches))
	for _, file := range matches {
		base := strings.TrimSuffix(file, Extension)
		avail[base] = file
		if strings.HasPrefix(base, InternalPrefix) {
			avail[strings.TrimPrefix(base, InternalPrefix)] = file
		}
	}

	return avail, nil
}

// ComponentName returns the logical name of a component file, e.g. "_icon.svelte" → "icon".
func ComponentName(file string) string {
	return strings.TrimPrefix(strings.TrimSuffix(file, Extension), InternalPrefix)
}

// IsInternal reports whether name carries the internal prefix.
func IsInternal(name string) bool {
	return strings.HasPrefix(name, InternalPrefix)
}

// Files returns every distinct file in the map, sorted.
func (a Availability) Files() []string {
	seen := make(map[string]struct{}, len(a))
	files := make([]string, 0, len(a))
	for _, file := range a {
		if _, ok := seen[file]; ok {
			continue
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Selectable returns the names a user may pick directly, sorted.
func (a Availability) Selectable() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		if IsInternal(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a requested name. A trailing component extension is ignored.
func (a Availability) Lookup(name string) (string, bool) {
	if file, ok := a[name]; ok {
		return file, true
	}
	file, ok := a[strings.TrimSuffix(name, Extension)]
	return file, ok
}
