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

package component

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/copyseeds/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// Reporter receives non-fatal selection warnings.
type Reporter interface {
	Warning(msg string)
}

// Request describes what the user asked for.
type Request struct {
	Names       []string
	All         bool
	Interactive bool
}

// Selection is the resolved list of files to act on. Cancelled is set when the
// user abandoned the interactive prompt; Files is then empty.
type Selection struct {
	Files     []string
	Cancelled bool
}

// 🎯 Select resolves a request against avail.
//
// Precedence is: select-all, explicit names, nothing (non-interactive), then an
// interactive multiselect over the non-internal names.
func Select(ctx context.Context, req Request, avail Availability, p prompt.Prompter, r Reporter) (Selection, error) {
	logger := zerolog.Ctx(ctx)

	switch {
	case req.All:
		logger.Debug().Int("files", len(avail.Files())).Msg("selecting all components")
		return Selection{Files: avail.Files()}, nil

	case len(req.Names) > 0:
		return Selection{Files: selectNamed(req.Names, avail, r)}, nil

	case !req.Interactive:
		logger.Debug().Msg("no components requested and prompts disabled")
		return Selection{}, nil
	}

	options := avail.Selectable()
	if len(options) == 0 {
		return Selection{}, nil
	}

	for {
		answer, err := p.MultiSelect(ctx, "Select components", options)
		if err != nil {
			return Selection{}, errors.Errorf("prompting for components: %w", err)
		}
		if answer.Cancelled {
			return Selection{Cancelled: true}, nil
		}
		if len(answer.Value) == 0 {
			r.Warning("Select at least one component (space to toggle, enter to confirm)")
			continue
		}
		return Selection{Files: selectNamed(answer.Value, avail, r)}, nil
	}
}

func selectNamed(names []string, avail Availability, r Reporter) []string {
	var (
		files   []string
		unknown []string
		seen    = make(map[string]struct{}, len(names))
	)

	for _, name := range names {
		file, ok := avail.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if _, dup := seen[file]; dup {
			continue
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}

	if len(unknown) > 0 {
		r.Warning(fmt.Sprintf("Unknown components skipped: %s", strings.Join(unknown, ", ")))
	}

	return files
}
