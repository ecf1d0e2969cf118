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

// Package ui shows progress feedback while long operations run.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Indicator runs fn while showing that work is in progress.
type Indicator interface {
	Busy(ctx context.Context, title string, fn func(ctx context.Context) error) error
}

// ⏳ Spinner is an Indicator backed by a pterm spinner on terminals and a
// single status line elsewhere.
type Spinner struct {
	out io.Writer
	tty bool
}

var _ Indicator = (*Spinner)(nil)

// NewSpinner creates a spinner writing to stdout.
func NewSpinner() *Spinner {
	return &Spinner{
		out: os.Stdout,
		tty: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewPlain creates an indicator that prints one line per operation to out.
func NewPlain(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

// Busy runs fn and reports how it went. The error from fn is returned unchanged.
func (s *Spinner) Busy(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	if !s.tty {
		fmt.Fprintf(s.out, "... %s\n", title)
		err := fn(ctx)
		logger.Debug().Str("task", title).Dur("elapsed", time.Since(start)).Err(err).Msg("task finished")
		return err
	}

	spinner, serr := pterm.DefaultSpinner.WithWriter(s.out).WithRemoveWhenDone(false).Start(title)
	if serr != nil {
		logger.Debug().Err(serr).Msg("starting spinner")
		return fn(ctx)
	}

	err := fn(ctx)
	elapsed := time.Since(start)
	if err != nil {
		spinner.Fail(title)
	} else {
		spinner.Success(fmt.Sprintf("%s (%.1fs)", title, elapsed.Seconds()))
	}
	logger.Debug().Str("task", title).Dur("elapsed", elapsed).Err(err).Msg("task finished")

	return err
}
