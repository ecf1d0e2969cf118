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
	"github.com/walteh/copyseeds/cmd/copyseeds/commands"
	"github.com/walteh/copyseeds/cmd/copyseeds/opts"
	"github.com/walteh/copyseeds/pkg/log"
	"github.com/walteh/copyseeds/pkg/operation"
	"github.com/walteh/copyseeds/pkg/prompt"
	"github.com/walteh/copyseeds/pkg/remote"
	"github.com/walteh/copyseeds/pkg/ui"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/copyseeds/pkg/remote/github"
	_ "github.com/walteh/copyseeds/pkg/remote/npm"
)

func main() {
	ctx := context.Background()
	o := &opts.RootOpts{}

	if err := newRootCommand(o).ExecuteContext(ctx); err != nil {
		userLogger := o.UserLogger
		if userLogger == nil {
			userLogger = log.NewUserLogger(ctx, false)
		}
		userLogger.Error(err)
		os.Exit(1)
	}
}

// newRootCommand creates the copyseeds command tree around o.
func newRootCommand(o *opts.RootOpts) *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "copyseeds [components...]",
		Short: "Copy svseeds components into a project",
		Long: `copyseeds fetches a component package and copies the selected components
into a local directory, together with the support files they need.

Components already in the destination can be updated (--update), removed
(--remove) or all removed at once (--uninstall). Without component names or
--all, components are picked interactively.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), f.debug)
			cmd.SetContext(ctx)
			return loadRootOpts(ctx, cmd, f, args, o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), o, prompt.NewTerminal(), ui.NewSpinner())
		},
	}

	addRootFlags(cmd, f)

	cmd.AddCommand(
		commands.NewListCmd(o),
		newVersionCmd(),
	)

	return cmd
}

// runSync performs the configured mode. Cancellation ends the run quietly.
func runSync(ctx context.Context, o *opts.RootOpts, p prompt.Prompter, busy ui.Indicator) error {
	runner, err := operation.NewRunner(operation.RunnerOptions{
		Config:   o.Config,
		Resolver: remote.NewSource(o.Config.SourcePath),
		Prompter: p,
		Reporter: o.UserLogger,
		Busy:     busy,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	outcome, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Stringer("outcome", outcome).Msg("run finished")
	return nil
}
