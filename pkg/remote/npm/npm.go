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

// Package npm resolves packages from an npm registry.
package npm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/copyseeds/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// DefaultRegistry is used when NPM_CONFIG_REGISTRY is unset.
const DefaultRegistry = "https://registry.npmjs.org"

func init() {
	remote.Register("npm", func(ctx context.Context) (remote.Resolver, error) {
		return New(), nil
	})
}

// 🎯 Resolver downloads the tarball of a published package version.
type Resolver struct {
	Registry string
	Client   *http.Client
}

var _ remote.Resolver = (*Resolver)(nil)

// New creates a resolver for the configured registry.
func New() *Resolver {
	registry := os.Getenv("NPM_CONFIG_REGISTRY")
	if registry == "" {
		registry = DefaultRegistry
	}
	return &Resolver{
		Registry: strings.TrimSuffix(registry, "/"),
		Client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

// versionManifest is the part of the registry version document we need.
type versionManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dist    struct {
		Tarball string `json:"tarball"`
	} `json:"dist"`
}

// ParseSpec splits "name@version" into its parts. Scoped names keep their
// leading "@". The version defaults to "latest".
func ParseSpec(spec string) (name, version string, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", "", errors.New("empty package name")
	}

	at := strings.LastIndex(spec, "@")
	if at > 0 {
		name, version = spec[:at], spec[at+1:]
	} else {
		name, version = spec, ""
	}

	if name == "" || name == "@" || (strings.HasPrefix(name, "@") && !strings.Contains(name, "/")) {
		return "", "", errors.Errorf("invalid package name %q", spec)
	}
	if version == "" {
		version = "latest"
	}
	return name, version, nil
}

// Fetch resolves the tarball URL from the registry and extracts it into scratchDir.
func (r *Resolver) Fetch(ctx context.Context, spec string, scratchDir string) (string, error) {
	logger := zerolog.Ctx(ctx)

	name, version, err := ParseSpec(spec)
	if err != nil {
		return "", err
	}

	manifest, err := r.manifest(ctx, name, version)
	if err != nil {
		return "", err
	}
	if manifest.Dist.Tarball == "" {
		return "", errors.Errorf("%w: %s@%s has no tarball", remote.ErrPackageNotFound, name, version)
	}

	logger.Debug().Str("name", manifest.Name).Str("version", manifest.Version).Str("tarball", manifest.Dist.Tarball).Msg("resolved package")

	body, err := remote.Download(ctx, r.Client, manifest.Dist.Tarball)
	if err != nil {
		return "", errors.Errorf("downloading tarball: %w", err)
	}
	defer body.Close()

	root := filepath.Join(scratchDir, "package")
	if err := remote.ExtractTarball(ctx, body, root); err != nil {
		return "", errors.Errorf("extracting tarball: %w", err)
	}

	return root, nil
}

func (r *Resolver) manifest(ctx context.Context, name, version string) (*versionManifest, error) {
	endpoint := r.Registry + "/" + escapeName(name) + "/" + url.PathEscape(version)

	body, err := remote.Download(ctx, r.Client, endpoint)
	if err != nil {
		return nil, errors.Errorf("resolving %s@%s: %w", name, version, err)
	}
	defer body.Close()

	var manifest versionManifest
	if err := json.NewDecoder(body).Decode(&manifest); err != nil {
		return nil, errors.Errorf("decoding registry response: %w", err)
	}
	return &manifest, nil
}

// escapeName encodes the scope separator the way the registry expects.
func escapeName(name string) string {
	if strings.HasPrefix(name, "@") {
		return "@" + url.PathEscape(strings.TrimPrefix(name, "@"))
	}
	return url.PathEscape(name)
}
