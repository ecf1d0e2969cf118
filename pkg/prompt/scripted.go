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

package prompt

import (
	"context"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// Scripted replays canned answers in order. It records every question asked.
type Scripted struct {
	mu        sync.Mutex
	Confirms  []Answer[bool]
	Selects   []Answer[[]string]
	Questions []string
	Offered   [][]string
}

var _ Prompter = (*Scripted)(nil)

// Confirm returns the next canned confirmation.
func (s *Scripted) Confirm(ctx context.Context, message string) (Answer[bool], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Questions = append(s.Questions, message)
	if len(s.Confirms) == 0 {
		return Answer[bool]{}, errors.Errorf("unexpected confirm: %s", message)
	}
	next := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return next, nil
}

// MultiSelect returns the next canned selection.
func (s *Scripted) MultiSelect(ctx context.Context, message string, options []string) (Answer[[]string], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Questions = append(s.Questions, message)
	s.Offered = append(s.Offered, append([]string(nil), options...))
	if len(s.Selects) == 0 {
		return Answer[[]string]{}, errors.Errorf("unexpected multiselect: %s", message)
	}
	next := s.Selects[0]
	s.Selects = s.Selects[1:]
	return next, nil
}
