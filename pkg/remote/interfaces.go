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

// Package remote fetches a component package into a scratch directory.
package remote

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrPackageNotFound is wrapped when a package, its archive or its component
// directory does not exist.
var ErrPackageNotFound = errors.Base("package not found")

// 🌐 Resolver fetches a package and returns the local directory holding it.
type Resolver interface {
	Fetch(ctx context.Context, pkg string, scratchDir string) (string, error)
}

// 🏭 Factory creates a resolver for one scheme.
type Factory func(ctx context.Context) (Resolver, error)

var registry = map[string]Factory{}

// 📝 Register registers the resolver factory for a scheme such as "npm".
func Register(scheme string, factory Factory) {
	registry[scheme] = factory
}

// Schemes returns the registered schemes, sorted.
func Schemes() []string {
	schemes := make([]string, 0, len(registry))
	for k := range registry {
		schemes = append(schemes, k)
	}
	sort.Strings(schemes)
	return schemes
}

// DefaultScheme is used for package identifiers without a scheme.
const DefaultScheme = "npm"

// SplitScheme splits "github:owner/repo" into its scheme and the remainder.
// Existing local paths resolve to the "file" scheme. Scoped npm names like
// "@scope/name" carry no scheme.
func SplitScheme(pkg string) (scheme, rest string) {
	if _, err := os.Stat(pkg); err == nil {
		return "file", pkg
	}
	if s, r, ok := strings.Cut(pkg, ":"); ok && s != "" && !strings.ContainsAny(s, "@/\\.") {
		return s, r
	}
	return DefaultScheme, pkg
}

// 📦 Source is the Resolver used by a run. It picks the scheme resolver for a
// package and returns the component directory inside the fetched package.
type Source struct {
	SourcePath string
}

var _ Resolver = (*Source)(nil)

// NewSource creates a source whose components live at sourcePath inside the package.
func NewSource(sourcePath string) *Source {
	return &Source{SourcePath: sourcePath}
}

// Fetch downloads pkg into scratchDir and returns its component directory.
func (s *Source) Fetch(ctx context.Context, pkg string, scratchDir string) (string, error) {
	if _, err := os.Stat(scratchDir); err != nil {
		return "", errors.Errorf("scratch directory: %w", err)
	}

	scheme, rest := SplitScheme(pkg)
	factory, ok := registry[scheme]
	if !ok {
		return "", errors.Errorf("unknown package scheme %q, options: %s", scheme, strings.Join(Schemes(), ", "))
	}

	resolver, err := factory(ctx)
	if err != nil {
		return "", errors.Errorf("creating %s resolver: %w", scheme, err)
	}

	zerolog.Ctx(ctx).Debug().Str("scheme", scheme).Str("package", rest).Msg("fetching package")

	root, err := resolver.Fetch(ctx, rest, scratchDir)
	if err != nil {
		return "", errors.Errorf("fetching %s: %w", pkg, err)
	}

	dir := filepath.Join(root, filepath.FromSlash(s.SourcePath))
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", errors.Errorf("%w: %s has no %s directory", ErrPackageNotFound, pkg, s.SourcePath)
	}

	return dir, nil
}
