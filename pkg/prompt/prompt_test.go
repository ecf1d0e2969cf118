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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalRequiresTTY(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	term := &Terminal{in: r}

	_, err = term.Confirm(context.Background(), "Copy?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")

	_, err = term.MultiSelect(context.Background(), "Select", []string{"button"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
}

func TestTerminalCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTerminal().Confirm(ctx, "Copy?")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScripted(t *testing.T) {
	s := &Scripted{
		Confirms: []Answer[bool]{{Value: true}, {Cancelled: true}},
		Selects:  []Answer[[]string]{{Value: []string{"button"}}},
	}
	ctx := context.Background()

	yes, err := s.Confirm(ctx, "first")
	require.NoError(t, err)
	assert.True(t, yes.Value)

	cancelled, err := s.Confirm(ctx, "second")
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)

	chosen, err := s.MultiSelect(ctx, "pick", []string{"button", "icon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"button"}, chosen.Value)

	_, err = s.Confirm(ctx, "third")
	require.Error(t, err, "running out of answers should fail")

	assert.Equal(t, []string{"first", "second", "pick", "third"}, s.Questions)
	assert.Equal(t, [][]string{{"button", "icon"}}, s.Offered)
}
