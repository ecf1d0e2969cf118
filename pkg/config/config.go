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
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

const (
	DefaultPackage    = "svseeds"
	DefaultSourcePath = "src/lib/_svseeds"
	DefaultDir        = "src/lib/_svseeds"
)

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.Base("invalid configuration")

// 🎛️ Mode is the single operation performed by a run.
type Mode int

const (
	ModeCopy Mode = iota
	ModeUpdate
	ModeRemove
	ModeUninstall
)

// String returns the flag-style name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCopy:
		return "copy"
	case ModeUpdate:
		return "update"
	case ModeRemove:
		return "remove"
	case ModeUninstall:
		return "uninstall"
	default:
		return "unknown"
	}
}

// OptionalBool is a flag value that remembers whether it was given.
type OptionalBool struct {
	value bool
	set   bool
}

// SetBool returns an OptionalBool holding v.
func SetBool(v bool) OptionalBool {
	return OptionalBool{value: v, set: true}
}

// IsSet reports whether a value was given.
func (o OptionalBool) IsSet() bool { return o.set }

// Value returns the value, false when unset.
func (o OptionalBool) Value() bool { return o.value }

// 🚩 Flags holds the command line input. Empty strings and unset booleans
// defer to the config file.
type Flags struct {
	Names       []string
	Package     string
	SourcePath  string
	Dir         string
	All         bool
	Update      bool
	Remove      bool
	Uninstall   bool
	NoConfirm   OptionalBool
	NoOverwrite OptionalBool
	NoStyle     OptionalBool
	Debug       bool
}

// 📚 Config is the resolved configuration for one run. It is built once and
// passed by value.
type Config struct {
	Root        string // project root, absolute
	Package     string // package identifier handed to the resolver
	SourcePath  string // directory inside the package holding the components
	Dir         string // destination, absolute
	Names       []string
	All         bool
	Update      bool
	Remove      bool
	Uninstall   bool
	NoConfirm   bool
	NoOverwrite bool
	NoStyle     bool
	Debug       bool
}

// 🏗️ Build merges defaults, the optional file config and flags, in that order.
func Build(root string, file *FileConfig, flags Flags) (Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Config{}, errors.Errorf("resolving project root: %w", err)
	}

	cfg := Config{
		Root:       absRoot,
		Package:    DefaultPackage,
		SourcePath: DefaultSourcePath,
		Dir:        DefaultDir,
	}

	if file != nil {
		if file.Package != "" {
			cfg.Package = file.Package
		}
		if file.SourcePath != "" {
			cfg.SourcePath = file.SourcePath
		}
		if file.Dir != "" {
			cfg.Dir = file.Dir
		}
		cfg.NoConfirm = file.NoConfirm
		cfg.NoOverwrite = file.NoOverwrite
		cfg.NoStyle = file.NoStyle
	}

	if flags.Package != "" {
		cfg.Package = flags.Package
	}
	if flags.SourcePath != "" {
		cfg.SourcePath = flags.SourcePath
	}
	if flags.Dir != "" {
		cfg.Dir = flags.Dir
	}
	if flags.NoConfirm.IsSet() {
		cfg.NoConfirm = flags.NoConfirm.Value()
	}
	if flags.NoOverwrite.IsSet() {
		cfg.NoOverwrite = flags.NoOverwrite.Value()
	}
	if flags.NoStyle.IsSet() {
		cfg.NoStyle = flags.NoStyle.Value()
	}

	cfg.Names = append([]string(nil), flags.Names...)
	cfg.All = flags.All
	cfg.Update = flags.Update
	cfg.Remove = flags.Remove
	cfg.Uninstall = flags.Uninstall
	cfg.Debug = flags.Debug

	if cfg.Dir != "" && !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(cfg.Root, cfg.Dir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.Dir = filepath.Clean(cfg.Dir)
	return cfg, nil
}

// ✅ Validate checks the configuration for conflicts.
func (c Config) Validate() error {
	modes := 0
	for _, on := range []bool{c.Update, c.Remove, c.Uninstall} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return errors.Errorf("%w: --update, --remove and --uninstall are mutually exclusive", ErrInvalid)
	}
	if c.Package == "" {
		return errors.Errorf("%w: package must not be empty", ErrInvalid)
	}
	if c.Dir == "" {
		return errors.Errorf("%w: destination directory must not be empty", ErrInvalid)
	}
	return nil
}

// Mode returns the operation selected by the flags.
func (c Config) Mode() Mode {
	switch {
	case c.Uninstall:
		return ModeUninstall
	case c.Remove:
		return ModeRemove
	case c.Update:
		return ModeUpdate
	default:
		return ModeCopy
	}
}

// 🌳 FindProjectRoot returns the nearest ancestor of start holding a
// package.json, or start itself when there is none.
func FindProjectRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	for current := dir; ; {
		if _, err := os.Stat(filepath.Join(current, "package.json")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
