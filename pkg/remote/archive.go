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
	"archive/tar"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Download fetches url with context support. A 404 wraps ErrPackageNotFound.
func Download(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Errorf("downloading %s: %w", url, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errors.Errorf("%w: %s", ErrPackageNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	return resp.Body, nil
}

// 📦 ExtractTarball unpacks a gzipped tarball into dest, dropping the first
// path component of every entry (npm's "package/", GitHub's "owner-repo-sha/").
// Only directories and regular files are written.
func ExtractTarball(ctx context.Context, r io.Reader, dest string) error {
	logger := zerolog.Ctx(ctx)

	gz, err := pgzip.NewReader(r)
	if err != nil {
		return errors.Errorf("invalid archive format - expected gzip file: %w", err)
	}
	defer gz.Close()

	dest, err = filepath.Abs(dest)
	if err != nil {
		return errors.Errorf("resolving destination: %w", err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	tr := tar.NewReader(gz)
	files := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Errorf("reading tar header: %w", err)
		}

		name := stripFirstComponent(hdr.Name)
		if name == "" {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(name))
		if !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
			return errors.Errorf("illegal file path in archive: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Errorf("creating dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return err
			}
			files++
		default:
			logger.Debug().Str("entry", hdr.Name).Msg("skipping non-regular archive entry")
		}
	}

	logger.Debug().Int("files", files).Str("dest", dest).Msg("extracted archive")
	return nil
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Errorf("creating parent dir for %s: %w", target, err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Errorf("creating file %s: %w", target, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return errors.Errorf("writing file %s: %w", target, err)
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("closing file %s: %w", target, err)
	}
	return nil
}

func stripFirstComponent(name string) string {
	name = strings.TrimPrefix(name, "./")
	_, rest, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}
	return strings.Trim(rest, "/")
}
