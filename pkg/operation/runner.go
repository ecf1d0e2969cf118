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

package operation

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/copyseeds/pkg/component"
	"github.com/walteh/copyseeds/pkg/config"
	"github.com/walteh/copyseeds/pkg/prompt"
	"github.com/walteh/copyseeds/pkg/remote"
	"github.com/walteh/copyseeds/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// 🏁 Outcome is how a run ended when it did not fail.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// 🔧 RunnerOptions holds the collaborators of a run
type RunnerOptions struct {
	Config   config.Config
	Resolver remote.Resolver
	Prompter prompt.Prompter
	Reporter Reporter
	Busy     ui.Indicator
}

// 🏃 Runner drives one invocation from fetch to mutation.
type Runner struct {
	opts RunnerOptions
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Resolver == nil {
		return nil, errors.Errorf("resolver is required")
	}
	if opts.Prompter == nil {
		return nil, errors.Errorf("prompter is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if opts.Busy == nil {
		return nil, errors.Errorf("busy indicator is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	return &Runner{opts: opts}, nil
}

// 🏃 Run executes the configured mode.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	cfg := r.opts.Config
	mode := cfg.Mode()

	logger := zerolog.Ctx(ctx).With().Stringer("mode", mode).Str("dest", cfg.Dir).Logger()
	ctx = logger.WithContext(ctx)

	if mode != config.ModeCopy {
		info, err := os.Stat(cfg.Dir)
		if err != nil || !info.IsDir() {
			return OutcomeCompleted, errors.Errorf("%w: target directory does not exist: %s", ErrPrecondition, cfg.Dir)
		}
	}

	if !cfg.NoConfirm {
		answer, err := r.opts.Prompter.Confirm(ctx, confirmMessage(mode, cfg.Dir))
		if err != nil {
			return OutcomeCompleted, errors.Errorf("confirming destination: %w", err)
		}
		if answer.Cancelled || !answer.Value {
			logger.Debug().Msg("destination not confirmed")
			return OutcomeCancelled, nil
		}
	}

	scratch, err := os.MkdirTemp("", "copyseeds-*")
	if err != nil {
		return OutcomeCompleted, errors.Errorf("%w: creating scratch directory: %s", ErrPrecondition, err.Error())
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn().Err(err).Str("scratch", scratch).Msg("removing scratch directory")
		}
	}()

	var sourceDir string
	err = r.opts.Busy.Busy(ctx, fmt.Sprintf("Fetching %s", cfg.Package), func(ctx context.Context) error {
		var ferr error
		sourceDir, ferr = r.opts.Resolver.Fetch(ctx, cfg.Package, scratch)
		return ferr
	})
	if err != nil {
		return OutcomeCompleted, errors.Errorf("fetching %s: %w", cfg.Package, err)
	}

	avail, err := component.Index(sourceDir)
	if err != nil {
		return OutcomeCompleted, errors.Errorf("%w: package source not found: %s", ErrPrecondition, err.Error())
	}
	logger.Debug().Int("available", len(avail.Files())).Msg("indexed package")

	var local component.LocalSet
	if mode != config.ModeCopy {
		local, err = component.FindLocal(cfg.Dir, avail)
		if err != nil {
			return OutcomeCompleted, errors.Errorf("inspecting %s: %w", cfg.Dir, err)
		}
		avail = component.FilterToLocal(avail, local)
		logger.Debug().Int("local", local.Len()).Msg("inspected destination")
	}

	exec, err := NewExecutor(Options{
		Config:    cfg,
		SourceDir: sourceDir,
		Reporter:  r.opts.Reporter,
	})
	if err != nil {
		return OutcomeCompleted, err
	}

	if mode == config.ModeUninstall {
		if _, err := exec.Uninstall(ctx, local); err != nil {
			return OutcomeCompleted, err
		}
		return OutcomeCompleted, nil
	}

	sel, err := component.Select(ctx, component.Request{
		Names:       cfg.Names,
		All:         cfg.All,
		Interactive: !cfg.NoConfirm,
	}, avail, r.opts.Prompter, r.opts.Reporter)
	if err != nil {
		return OutcomeCompleted, errors.Errorf("selecting components: %w", err)
	}
	if sel.Cancelled {
		return OutcomeCancelled, nil
	}
	if len(sel.Files) == 0 {
		return OutcomeCompleted, errors.Errorf("%w: no components specified", ErrPrecondition)
	}

	switch mode {
	case config.ModeUpdate:
		_, err = exec.Update(ctx, sel.Files, local)
	case config.ModeRemove:
		_, err = exec.Remove(ctx, sel.Files, local)
	default:
		_, err = exec.Copy(ctx, sel.Files)
	}
	if err != nil {
		return OutcomeCompleted, err
	}

	return OutcomeCompleted, nil
}

func confirmMessage(mode config.Mode, dir string) string {
	switch mode {
	case config.ModeUpdate:
		return fmt.Sprintf("Update components in %s?", dir)
	case config.ModeRemove:
		return fmt.Sprintf("Remove components from %s?", dir)
	case config.ModeUninstall:
		return fmt.Sprintf("Uninstall all components from %s?", dir)
	default:
		return fmt.Sprintf("Copy components to %s?", dir)
	}
}
