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

// Package prompt asks the user questions. A cancelled prompt is reported as an
// Answer with Cancelled set, never as an error.
package prompt

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"
)

// Answer is the result of a prompt the user may abandon.
type Answer[T any] struct {
	Value     T
	Cancelled bool
}

// Prompter asks confirmation and multiple-choice questions.
type Prompter interface {
	Confirm(ctx context.Context, message string) (Answer[bool], error)
	MultiSelect(ctx context.Context, message string, options []string) (Answer[[]string], error)
}

// 🖥️ Terminal prompts interactively with pterm.
type Terminal struct {
	in *os.File
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal creates a prompter reading from stdin.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin}
}

func (t *Terminal) ensureTTY() error {
	if !term.IsTerminal(int(t.in.Fd())) {
		return errors.New("interactive prompt requires a terminal, use --no-confirm or name the components")
	}
	return nil
}

// Confirm asks a yes/no question. Ctrl-C cancels.
func (t *Terminal) Confirm(ctx context.Context, message string) (Answer[bool], error) {
	if err := ctx.Err(); err != nil {
		return Answer[bool]{}, errors.Errorf("confirming: %w", err)
	}
	if err := t.ensureTTY(); err != nil {
		return Answer[bool]{}, err
	}

	cancelled := false
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		WithOnInterruptFunc(func() { cancelled = true }).
		Show(message)
	if cancelled {
		zerolog.Ctx(ctx).Debug().Str("message", message).Msg("confirm cancelled")
		return Answer[bool]{Cancelled: true}, nil
	}
	if err != nil {
		return Answer[bool]{}, errors.Errorf("confirming: %w", err)
	}

	return Answer[bool]{Value: ok}, nil
}

// MultiSelect asks the user to pick any number of options. Ctrl-C cancels.
func (t *Terminal) MultiSelect(ctx context.Context, message string, options []string) (Answer[[]string], error) {
	if err := ctx.Err(); err != nil {
		return Answer[[]string]{}, errors.Errorf("selecting: %w", err)
	}
	if err := t.ensureTTY(); err != nil {
		return Answer[[]string]{}, err
	}

	cancelled := false
	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithMaxHeight(15).
		WithOnInterruptFunc(func() { cancelled = true }).
		Show(message)
	if cancelled {
		zerolog.Ctx(ctx).Debug().Str("message", message).Msg("multiselect cancelled")
		return Answer[[]string]{Cancelled: true}, nil
	}
	if err != nil {
		return Answer[[]string]{}, errors.Errorf("selecting: %w", err)
	}

	return Answer[[]string]{Value: chosen}, nil
}
