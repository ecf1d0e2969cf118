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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/copyseeds/cmd/copyseeds/opts"
	"github.com/walteh/copyseeds/pkg/config"
	"github.com/walteh/copyseeds/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the raw command line values.
type rootFlags struct {
	configFile  string
	pkg         string
	sourcePath  string
	dir         string
	all         bool
	update      bool
	remove      bool
	uninstall   bool
	noConfirm   bool
	noOverwrite bool
	noStyle     bool
	debug       bool
}

// addRootFlags adds the flags to the root command. Flags shared with
// subcommands are persistent.
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file path (default: .copyseeds.{yaml,yml,hcl} in the project root)")
	pf.StringVarP(&f.pkg, "package", "p", "", "package to fetch components from (npm name, github:owner/repo or local path)")
	pf.StringVar(&f.sourcePath, "source-path", "", "directory holding the components inside the package")
	pf.StringVarP(&f.dir, "dir", "d", "", "destination directory relative to the project root")
	pf.BoolVar(&f.debug, "debug", false, "enable debug logging")

	fl := cmd.Flags()
	fl.BoolVarP(&f.all, "all", "a", false, "select all components")
	fl.BoolVarP(&f.update, "update", "u", false, "update components already in the destination")
	fl.BoolVarP(&f.remove, "remove", "r", false, "remove components from the destination")
	fl.BoolVar(&f.uninstall, "uninstall", false, "remove every component and the destination directory")
	fl.BoolVar(&f.noConfirm, "no-confirm", false, "disable interactive prompts and path confirmation")
	fl.BoolVar(&f.noOverwrite, "no-overwrite", false, "skip files already present in the destination")
	fl.BoolVar(&f.noStyle, "no-style", false, "do not copy the style support file")

	cmd.MarkFlagsMutuallyExclusive("update", "remove", "uninstall")
}

// setupLogging places a logger on the context. Structured logs only reach
// stderr with --debug; user output goes through the UserLogger.
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// optionalBool returns the flag value only when it was given on the command line.
func optionalBool(cmd *cobra.Command, name string, value bool) config.OptionalBool {
	if flag := cmd.Flags().Lookup(name); flag == nil || !flag.Changed {
		return config.OptionalBool{}
	}
	return config.SetBool(value)
}

// loadRootOpts builds the run configuration from the config file and flags.
func loadRootOpts(ctx context.Context, cmd *cobra.Command, f *rootFlags, args []string, o *opts.RootOpts) error {
	o.UserLogger = log.NewUserLogger(ctx, f.debug)

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}
	root := config.FindProjectRoot(cwd)

	file, err := config.LoadOptional(ctx, root, f.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	cfg, err := config.Build(root, file, config.Flags{
		Names:       args,
		Package:     f.pkg,
		SourcePath:  f.sourcePath,
		Dir:         f.dir,
		All:         f.all,
		Update:      f.update,
		Remove:      f.remove,
		Uninstall:   f.uninstall,
		NoConfirm:   optionalBool(cmd, "no-confirm", f.noConfirm),
		NoOverwrite: optionalBool(cmd, "no-overwrite", f.noOverwrite),
		NoStyle:     optionalBool(cmd, "no-style", f.noStyle),
		Debug:       f.debug,
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", cfg.Root).
		Str("package", cfg.Package).
		Str("dir", cfg.Dir).
		Stringer("mode", cfg.Mode()).
		Msg("configuration loaded")

	o.Config = cfg
	return nil
}
