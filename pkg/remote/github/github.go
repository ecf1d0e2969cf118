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

// Package github resolves packages from GitHub repository tarballs.
package github

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/copyseeds/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.Register("github", func(ctx context.Context) (remote.Resolver, error) {
		return NewResolver(), nil
	})
}

// ArchiveClient is the part of the GitHub API the resolver needs.
type ArchiveClient interface {
	GetArchiveLink(ctx context.Context, owner, repo string, format github.ArchiveFormat, opts *github.RepositoryContentGetOptions, maxRedirects int) (*url.URL, *github.Response, error)
}

// 🎯 Resolver downloads the tarball of a repository ref.
type Resolver struct {
	client ArchiveClient
	http   *http.Client
}

var _ remote.Resolver = (*Resolver)(nil)

// NewResolver creates a resolver using GITHUB_TOKEN when it is set.
func NewResolver() *Resolver {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return NewResolverWithClient(client.Repositories, &http.Client{Timeout: 2 * time.Minute})
}

// NewResolverWithClient creates a resolver around an existing API client.
func NewResolverWithClient(client ArchiveClient, httpClient *http.Client) *Resolver {
	return &Resolver{client: client, http: httpClient}
}

// ParseRepo splits "owner/repo[@ref]". An empty ref means the default branch.
func ParseRepo(spec string) (owner, repo, ref string, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", "", "", errors.New("empty repository name")
	}

	name, ref, _ := strings.Cut(spec, "@")
	parts := strings.Split(name, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", errors.Errorf("invalid repository name %q, expected owner/repo", spec)
	}

	return parts[0], parts[1], ref, nil
}

// Fetch downloads the repository tarball and extracts it into scratchDir.
func (r *Resolver) Fetch(ctx context.Context, spec string, scratchDir string) (string, error) {
	logger := zerolog.Ctx(ctx)

	owner, repo, ref, err := ParseRepo(spec)
	if err != nil {
		return "", err
	}

	link, resp, err := r.client.GetArchiveLink(ctx, owner, repo, github.Tarball, &github.RepositoryContentGetOptions{Ref: ref}, 3)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", errors.Errorf("%w: github.com/%s/%s@%s", remote.ErrPackageNotFound, owner, repo, ref)
		}
		return "", errors.Errorf("getting archive link: %w", err)
	}

	logger.Debug().Str("owner", owner).Str("repo", repo).Str("ref", ref).Msg("resolved archive link")

	body, err := remote.Download(ctx, r.http, link.String())
	if err != nil {
		return "", errors.Errorf("downloading archive: %w", err)
	}
	defer body.Close()

	root := filepath.Join(scratchDir, "repo")
	if err := remote.ExtractTarball(ctx, body, root); err != nil {
		return "", errors.Errorf("extracting archive: %w", err)
	}

	return root, nil
}
