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

package component

import (
	"os"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// LocalSet is the set of tracked files already present in a destination.
type LocalSet map[string]struct{}

// NewLocalSet builds a set from the given file names.
func NewLocalSet(files ...string) LocalSet {
	set := make(LocalSet, len(files))
	for _, file := range files {
		set[file] = struct{}{}
	}
	return set
}

// Has reports whether file is present.
func (s LocalSet) Has(file string) bool {
	_, ok := s[file]
	return ok
}

// Len returns the number of files in the set.
func (s LocalSet) Len() int {
	return len(s)
}

// Sorted returns the files in the set in lexical order.
func (s LocalSet) Sorted() []string {
	files := make([]string, 0, len(s))
	for file := range s {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// 🔍 FindLocal returns the tracked files that already exist in destDir.
//
// Tracked files are every file in avail plus the support files. A missing
// destDir yields an error matching fs.ErrNotExist.
func FindLocal(destDir string, avail Availability) (LocalSet, error) {
	candidates := NewLocalSet(SupportFiles...)
	for _, file := range avail {
		candidates[file] = struct{}{}
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return nil, errors.Errorf("reading destination %s: %w", destDir, err)
	}

	local := make(LocalSet)
	for _, entry := range entries {
		if candidates.Has(entry.Name()) {
			local[entry.Name()] = struct{}{}
		}
	}

	return local, nil
}

// FilterToLocal returns a copy of avail restricted to files present in local.
//
// An empty local set means filtering does not apply and the copy is complete.
func FilterToLocal(avail Availability, local LocalSet) Availability {
	filtered := make(Availability, len(avail))
	for name, file := range avail {
		if local.Len() > 0 && !local.Has(file) {
			continue
		}
		filtered[name] = file
	}
	return filtered
}
