// Copyright (c) 2026, NVIDIA CORPORATION.  All rights reserved.
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

package kubectl

import (
	"testing"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "NotStarted", StateNotStarted.String())
	assert.Equal(t, "LaunchFailed", StateLaunchFailed.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StateNotStarted.Terminal())
	assert.False(t, StateLaunching.Terminal())
	assert.False(t, StateStreaming.Terminal())
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateLaunchFailed.Terminal())
	assert.True(t, StateCanceled.Terminal())
}

func TestInvocationTransitions(t *testing.T) {
	tests := []struct {
		name  string
		path  []State
		valid bool
	}{
		{"completed", []State{StateLaunching, StateStreaming, StateCompleted}, true},
		{"launch failed", []State{StateLaunching, StateLaunchFailed}, true},
		{"canceled while streaming", []State{StateLaunching, StateStreaming, StateCanceled}, true},
		{"canceled while launching", []State{StateLaunching, StateCanceled}, true},
		{"skip launching", []State{StateStreaming}, false},
		{"complete without streaming", []State{StateLaunching, StateCompleted}, false},
		{"restart after completion", []State{StateLaunching, StateStreaming, StateCompleted, StateLaunching}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInvocation(Command{Operation: OpApply})
			var err error
			for _, s := range tt.path {
				if err = inv.advance(s); err != nil {
					break
				}
			}
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.path[len(tt.path)-1], inv.State())
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInternal))
		})
	}
}

func TestInvocationFinish(t *testing.T) {
	inv := newInvocation(Command{Operation: OpRolloutStatus})
	assert.Zero(t, inv.Duration())

	require.NoError(t, inv.advance(StateLaunching))
	require.NoError(t, inv.advance(StateStreaming))
	require.Error(t, inv.finish(StateStreaming, 0, nil), "finish requires a terminal state")
	require.NoError(t, inv.finish(StateCompleted, 3, nil))

	code, err := inv.Wait()
	assert.NoError(t, err)
	assert.Equal(t, 3, code)

	require.Error(t, inv.finish(StateCanceled, -1, nil), "terminal states are final")
	code, _ = inv.Wait()
	assert.Equal(t, 3, code)
}
