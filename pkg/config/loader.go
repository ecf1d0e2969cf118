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

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFiles are looked up, in order, in the project root. package.json is
// last; its "copyseeds" key holds the config when present.
var DefaultFiles = []string{".copyseeds.yaml", ".copyseeds.yml", ".copyseeds.hcl", ".copyseeds.json", "package.json"}

// 📄 FileConfig is the project config file. Every field is optional.
type FileConfig struct {
	Package     string `json:"package" yaml:"package" hcl:"package,optional"`
	SourcePath  string `json:"source_path" yaml:"source_path" hcl:"source_path,optional"`
	Dir         string `json:"dir" yaml:"dir" hcl:"dir,optional"`
	NoConfirm   bool   `json:"no_confirm" yaml:"no_confirm" hcl:"no_confirm,optional"`
	NoOverwrite bool   `json:"no_overwrite" yaml:"no_overwrite" hcl:"no_overwrite,optional"`
	NoStyle     bool   `json:"no_style" yaml:"no_style" hcl:"no_style,optional"`
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, filename string, data []byte) (*FileConfig, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load reads and parses the config file at path.
func Load(ctx context.Context, path string) (*FileConfig, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: no parser found for file %s", ErrInvalid, path)
	}

	cfg, err := p.Parse(ctx, filepath.Base(path), data)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// 🔍 Discover returns the first default config file present in root, or "".
func Discover(root string) string {
	for _, name := range DefaultFiles {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadOptional loads path when given, otherwise the discovered default file.
// It returns nil without error when no file exists.
func LoadOptional(ctx context.Context, root, path string) (*FileConfig, error) {
	if path == "" {
		path = Discover(root)
		if path == "" {
			zerolog.Ctx(ctx).Debug().Str("root", root).Msg("no config file found")
			return nil, nil
		}
	}
	return Load(ctx, path)
}
