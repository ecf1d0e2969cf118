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

package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/copyseeds/cmd/copyseeds/opts"
	"github.com/walteh/copyseeds/pkg/component"
	"github.com/walteh/copyseeds/pkg/log"
	"github.com/walteh/copyseeds/pkg/remote"
	"github.com/walteh/copyseeds/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	return NewListCmdWith(o, ui.NewSpinner())
}

// NewListCmdWith creates a list command reporting fetch progress through busy.
func NewListCmdWith(o *opts.RootOpts, busy ui.Indicator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the components of the package",
		Long: `List fetches the package and prints every selectable component,
marking the ones already present in the destination directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), o, busy, cmd.OutOrStdout())
		},
	}
	return cmd
}

func runList(ctx context.Context, o *opts.RootOpts, busy ui.Indicator, out io.Writer) error {
	cfg := o.Config

	scratch, err := os.MkdirTemp("", "copyseeds-*")
	if err != nil {
		return errors.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	source := remote.NewSource(cfg.SourcePath)
	var sourceDir string
	err = busy.Busy(ctx, fmt.Sprintf("Fetching %s", cfg.Package), func(ctx context.Context) error {
		var ferr error
		sourceDir, ferr = source.Fetch(ctx, cfg.Package, scratch)
		return ferr
	})
	if err != nil {
		return errors.Errorf("fetching %s: %w", cfg.Package, err)
	}

	avail, err := component.Index(sourceDir)
	if err != nil {
		return errors.Errorf("indexing package: %w", err)
	}

	local, err := component.FindLocal(cfg.Dir, avail)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("inspecting %s: %w", cfg.Dir, err)
		}
		local = component.NewLocalSet()
	}

	names := avail.Selectable()
	if len(names) == 0 {
		o.UserLogger.Warning(fmt.Sprintf("%s has no components", cfg.Package))
		return nil
	}

	for _, name := range names {
		file := avail[name]
		if _, err := fmt.Fprintln(out, log.FormatComponentLine(name, file, local.Has(file))); err != nil {
			return errors.Errorf("writing list: %w", err)
		}
	}

	o.UserLogger.Info(fmt.Sprintf("%d of %d components installed in %s", countInstalled(names, avail, local), len(names), cfg.Dir))
	return nil
}

func countInstalled(names []string, avail component.Availability, local component.LocalSet) int {
	n := 0
	for _, name := range names {
		if local.Has(avail[name]) {
			n++
		}
	}
	return n
}
