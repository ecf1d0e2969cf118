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

package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	gh "github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copyseeds/pkg/remote"
	"github.com/walteh/copyseeds/pkg/remote/github"
	"github.com/walteh/copyseeds/pkg/testutils"
)

type mockArchiveClient struct {
	mock.Mock
}

func (m *mockArchiveClient) GetArchiveLink(ctx context.Context, owner, repo string, format gh.ArchiveFormat, opts *gh.RepositoryContentGetOptions, maxRedirects int) (*url.URL, *gh.Response, error) {
	args := m.Called(ctx, owner, repo, format, opts, maxRedirects)
	link, _ := args.Get(0).(*url.URL)
	resp, _ := args.Get(1).(*gh.Response)
	return link, resp, args.Error(2)
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		spec      string
		wantOwner string
		wantRepo  string
		wantRef   string
		wantErr   bool
	}{
		{spec: "walteh/svseeds", wantOwner: "walteh", wantRepo: "svseeds"},
		{spec: "walteh/svseeds@v1.2.0", wantOwner: "walteh", wantRepo: "svseeds", wantRef: "v1.2.0"},
		{spec: "", wantErr: true},
		{spec: "svseeds", wantErr: true},
		{spec: "a/b/c", wantErr: true},
		{spec: "/svseeds", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			owner, repo, ref, err := github.ParseRepo(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestResolverFetch(t *testing.T) {
	archive := testutils.Tarball(t, "walteh-svseeds-abc123", testutils.SeedPackage())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	link, err := url.Parse(srv.URL + "/archive.tar.gz")
	require.NoError(t, err)

	client := &mockArchiveClient{}
	client.On("GetArchiveLink", mock.Anything, "walteh", "svseeds", gh.Tarball, &gh.RepositoryContentGetOptions{Ref: "main"}, 3).
		Return(link, &gh.Response{Response: &http.Response{StatusCode: http.StatusFound}}, nil).Once()

	scratch := t.TempDir()
	root, err := github.NewResolverWithClient(client, srv.Client()).Fetch(testutils.Context(t), "walteh/svseeds@main", scratch)
	require.NoError(t, err)
	client.AssertExpectations(t)

	assert.Equal(t, filepath.Join(scratch, "repo"), root)
	_, err = os.Stat(filepath.Join(root, "src", "lib", "_svseeds", "__core.ts"))
	assert.NoError(t, err, "archive should be extracted without its top-level directory")
}

func TestResolverFetchNotFound(t *testing.T) {
	client := &mockArchiveClient{}
	client.On("GetArchiveLink", mock.Anything, "walteh", "missing", gh.Tarball, mock.Anything, 3).
		Return(nil, &gh.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}, assert.AnError).Once()

	_, err := github.NewResolverWithClient(client, http.DefaultClient).Fetch(testutils.Context(t), "walteh/missing", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrPackageNotFound)
}
