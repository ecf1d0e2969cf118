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

/*
Package status manages the files of the destination directory.

	+-----------+   Compare    +---------------+
	| component | -----------> |  destination  |
	|  content  |  WriteAtomic |   directory   |
	+-----------+   Delete     +---------------+

🎯 Purpose:
- Reports whether a destination file is new, modified or unchanged
- Writes files atomically (temp file + rename in the same directory)
- Deletes tracked files and prunes the directory once it is empty

The destination directory is the only persisted state: a component is
installed exactly when its file exists there.
*/
package status

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the current state of a destination file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File doesn't exist in destination
	StatusModified             // File exists but content differs
	StatusUnchanged            // File exists and content matches
	StatusDeleted              // File was deleted
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 🔧 Manager performs all file system operations inside one directory
type Manager struct {
	baseDir string
}

// 🏭 New creates a manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{baseDir: filepath.Clean(baseDir)}
}

// Dir returns the managed directory.
func (m *Manager) Dir() string {
	return m.baseDir
}

// Path returns the absolute path of a file in the managed directory.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.baseDir, name)
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// 🔍 Compare reports how content relates to the current file called name.
func (m *Manager) Compare(ctx context.Context, name string, content []byte) (FileStatus, error) {
	current, err := os.ReadFile(m.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return StatusNew, nil
	}
	if err != nil {
		return StatusUnknown, errors.Errorf("reading %s: %w", name, err)
	}

	if bytes.Equal(current, content) {
		return StatusUnchanged, nil
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", name).
		Str("old_checksum", calculateChecksum(current)).
		Str("new_checksum", calculateChecksum(content)).
		Msg("content differs")
	return StatusModified, nil
}

// FileExists reports whether name exists in the managed directory.
func (m *Manager) FileExists(ctx context.Context, name string) (bool, error) {
	_, err := os.Lstat(m.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// CreateDir creates the managed directory and its parents.
func (m *Manager) CreateDir(ctx context.Context) error {
	if err := os.MkdirAll(m.baseDir, 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

// ReadFile reads name from the managed directory.
func (m *Manager) ReadFile(ctx context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(m.Path(name))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// ✍️ WriteFileAtomic replaces name with content. Readers see either the old
// or the new content, never a partial file.
func (m *Manager) WriteFileAtomic(ctx context.Context, name string, content []byte) error {
	tmp, err := os.CreateTemp(m.baseDir, "."+name+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tempPath, m.Path(name)); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", name).Int("size", len(content)).Msg("wrote file")
	return nil
}

// DeleteFile removes name from the managed directory.
func (m *Manager) DeleteFile(ctx context.Context, name string) error {
	if err := os.Remove(m.Path(name)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

// 🧹 RemoveDirIfEmpty removes the managed directory when nothing is left in
// it and reports whether it did.
func (m *Manager) RemoveDirIfEmpty(ctx context.Context) (bool, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return false, errors.Errorf("reading directory: %w", err)
	}
	if len(entries) > 0 {
		zerolog.Ctx(ctx).Debug().Int("entries", len(entries)).Str("dir", m.baseDir).Msg("directory not empty, keeping it")
		return false, nil
	}

	if err := os.Remove(m.baseDir); err != nil {
		return false, errors.Errorf("removing directory: %w", err)
	}
	return true, nil
}
