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
	"fmt"
	"sync"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/google/uuid"
)

// State is the lifecycle position of an Invocation.
type State int

const (
	StateNotStarted State = iota
	StateLaunching
	StateStreaming
	StateCompleted
	StateLaunchFailed
	StateCanceled
)

var stateNames = map[State]string{
	StateNotStarted:   "NotStarted",
	StateLaunching:    "Launching",
	StateStreaming:    "Streaming",
	StateCompleted:    "Completed",
	StateLaunchFailed: "LaunchFailed",
	StateCanceled:     "Canceled",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateLaunchFailed || s == StateCanceled
}

// allowed lists the legal successor states.
var allowed = map[State][]State{
	StateNotStarted: {StateLaunching},
	StateLaunching:  {StateStreaming, StateLaunchFailed, StateCanceled},
	StateStreaming:  {StateCompleted, StateCanceled},
}

func canAdvance(from, to State) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Invocation tracks one kubectl run from launch to exit.
type Invocation struct {
	ID      string
	Command Command

	mu       sync.Mutex
	state    State
	exitCode int
	err      error
	started  time.Time
	ended    time.Time

	launched chan struct{}
	done     chan struct{}
}

func newInvocation(cmd Command) *Invocation {
	return &Invocation{
		ID:       uuid.NewString(),
		Command:  cmd,
		exitCode: -1,
		launched: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// State returns the current state.
func (inv *Invocation) State() State {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.state
}

// Launched is closed once the invocation leaves Launching, either because
// kubectl started or because it failed to.
func (inv *Invocation) Launched() <-chan struct{} { return inv.launched }

// Done is closed when the invocation reaches a terminal state.
func (inv *Invocation) Done() <-chan struct{} { return inv.done }

// Wait blocks until the invocation is done and returns its exit code and
// error. The exit code is -1 unless kubectl ran to completion.
func (inv *Invocation) Wait() (int, error) {
	<-inv.done
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.exitCode, inv.err
}

// Err returns the terminal error, if any, without blocking.
func (inv *Invocation) Err() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.err
}

// Duration is the time from launch to exit, or to now while running.
func (inv *Invocation) Duration() time.Duration {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	switch {
	case inv.started.IsZero():
		return 0
	case inv.ended.IsZero():
		return time.Since(inv.started)
	default:
		return inv.ended.Sub(inv.started)
	}
}

// advance moves to the next state, closing Launched and Done as they are
// passed.
func (inv *Invocation) advance(to State) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.advanceLocked(to)
}

func (inv *Invocation) advanceLocked(to State) error {
	from := inv.state
	if !canAdvance(from, to) {
		return errors.NewWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("illegal invocation transition %s -> %s", from, to),
			map[string]any{"invocation": inv.ID})
	}
	inv.state = to

	now := time.Now()
	if to == StateLaunching {
		inv.started = now
	}
	if from == StateLaunching {
		close(inv.launched)
	}
	if to.Terminal() {
		inv.ended = now
		close(inv.done)
	}
	return nil
}

// finish records the outcome and moves to the terminal state.
func (inv *Invocation) finish(to State, exitCode int, err error) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if !to.Terminal() {
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("%s is not a terminal state", to))
	}
	if !canAdvance(inv.state, to) {
		return inv.advanceLocked(to)
	}
	inv.exitCode = exitCode
	inv.err = err
	return inv.advanceLocked(to)
}
