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

// Package processtest provides a scripted in-memory process.Launcher for
// tests that must not spawn real binaries.
package processtest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/process"
)

// Script describes how one fake process behaves.
type Script struct {
	// Stdout and Stderr are written chunk by chunk, one Write per element.
	Stdout []string
	Stderr []string

	// ExitCode is returned by Wait.
	ExitCode int

	// LaunchErr makes Launch fail with a launch failure wrapping it.
	LaunchErr error

	// EchoStdin copies everything written to stdin to stdout, as a single
	// chunk after the scripted ones, once stdin is closed.
	EchoStdin bool

	// Hold keeps the output streams open until it is closed or the launch
	// context is done. A done context resolves Wait as canceled.
	Hold <-chan struct{}
}

// Call records one Launch.
type Call struct {
	Name  string
	Args  []string
	Stdin string
}

// Launcher is a fake process.Launcher.
type Launcher struct {
	script func(name string, args []string) Script

	mu    sync.Mutex
	calls []*call
}

var _ process.Launcher = (*Launcher)(nil)

// New returns a Launcher that runs s for every launch.
func New(s Script) *Launcher {
	return NewFunc(func(string, []string) Script { return s })
}

// NewFunc returns a Launcher that asks fn for the script of each launch.
func NewFunc(fn func(name string, args []string) Script) *Launcher {
	return &Launcher{script: fn}
}

// Calls returns every launch so far, including failed ones.
func (l *Launcher) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, 0, len(l.calls))
	for _, c := range l.calls {
		out = append(out, c.snapshot())
	}
	return out
}

// Launch implements process.Launcher.
func (l *Launcher) Launch(ctx context.Context, name string, args ...string) (process.Process, error) {
	c := &call{name: name, args: append([]string(nil), args...)}
	l.mu.Lock()
	l.calls = append(l.calls, c)
	l.mu.Unlock()

	s := l.script(name, args)
	if s.LaunchErr != nil {
		return nil, process.LaunchFailure(name, s.LaunchErr)
	}

	p := newFakeProcess(ctx, s, c)
	p.start()
	return p, nil
}

type call struct {
	mu    sync.Mutex
	name  string
	args  []string
	stdin bytes.Buffer
}

func (c *call) snapshot() Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Call{Name: c.name, Args: append([]string(nil), c.args...), Stdin: c.stdin.String()}
}

type fakeProcess struct {
	ctx    context.Context
	script Script
	call   *call

	stdin  *fakeStdin
	stdout *io.PipeReader
	stderr *io.PipeReader
	outW   *io.PipeWriter
	errW   *io.PipeWriter

	wg sync.WaitGroup
}

func newFakeProcess(ctx context.Context, s Script, c *call) *fakeProcess {
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	return &fakeProcess{
		ctx:    ctx,
		script: s,
		call:   c,
		stdin:  &fakeStdin{call: c, closed: make(chan struct{})},
		stdout: outR,
		stderr: errR,
		outW:   outW,
		errW:   errW,
	}
}

func (p *fakeProcess) start() {
	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		defer p.outW.Close()
		for _, chunk := range p.script.Stdout {
			if _, err := io.WriteString(p.outW, chunk); err != nil {
				return
			}
		}
		if p.script.EchoStdin {
			select {
			case <-p.stdin.closed:
				if data := p.call.snapshot().Stdin; data != "" {
					_, _ = io.WriteString(p.outW, data)
				}
			case <-p.ctx.Done():
			}
		}
		p.hold()
	}()
	go func() {
		defer p.wg.Done()
		defer p.errW.Close()
		for _, chunk := range p.script.Stderr {
			if _, err := io.WriteString(p.errW, chunk); err != nil {
				return
			}
		}
		p.hold()
	}()
}

func (p *fakeProcess) hold() {
	if p.script.Hold == nil {
		return
	}
	select {
	case <-p.script.Hold:
	case <-p.ctx.Done():
	}
}

func (p *fakeProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *fakeProcess) Stdout() io.Reader     { return p.stdout }
func (p *fakeProcess) Stderr() io.Reader     { return p.stderr }

func (p *fakeProcess) Wait() (int, error) {
	p.wg.Wait()
	if p.script.Hold != nil && p.ctx.Err() != nil {
		select {
		case <-p.script.Hold:
		default:
			return -1, errors.Wrap(errors.ErrCodeCanceled, "process killed on cancellation", p.ctx.Err())
		}
	}
	return p.script.ExitCode, nil
}

type fakeStdin struct {
	call   *call
	mu     sync.Mutex
	done   bool
	closed chan struct{}
}

func (s *fakeStdin) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return 0, io.ErrClosedPipe
	}
	s.call.mu.Lock()
	defer s.call.mu.Unlock()
	return s.call.stdin.Write(b)
}

func (s *fakeStdin) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.done = true
		close(s.closed)
	}
	return nil
}
