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

package remote

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("file", func(ctx context.Context) (Resolver, error) {
		return &LocalResolver{}, nil
	})
}

// 📁 LocalResolver serves a package from the local filesystem: an unpacked
// package directory or a .tgz archive such as the output of "npm pack".
type LocalResolver struct{}

var _ Resolver = (*LocalResolver)(nil)

// Fetch returns path itself for directories and extracts archives into scratchDir.
func (l *LocalResolver) Fetch(ctx context.Context, path string, scratchDir string) (string, error) {
	path = strings.TrimPrefix(path, "//")

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("%w: %s", ErrPackageNotFound, path)
		}
		return "", errors.Errorf("reading local package: %w", err)
	}

	if info.IsDir() {
		return filepath.Abs(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	root := filepath.Join(scratchDir, "package")
	if err := ExtractTarball(ctx, f, root); err != nil {
		return "", errors.Errorf("extracting %s: %w", path, err)
	}

	return root, nil
}
