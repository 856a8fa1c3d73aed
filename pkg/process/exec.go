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

package process

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"sync"
	"time"

	utilexec "k8s.io/utils/exec"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/errors"
)

// ExecLauncher starts real OS processes through k8s.io/utils/exec.
type ExecLauncher struct {
	exec  utilexec.Interface
	env   []string
	grace time.Duration
}

// ExecOption configures an ExecLauncher.
type ExecOption func(*ExecLauncher)

// WithExec sets the exec implementation. Defaults to utilexec.New().
func WithExec(e utilexec.Interface) ExecOption {
	return func(l *ExecLauncher) {
		l.exec = e
	}
}

// WithEnv sets the child environment. A nil env inherits the parent's.
func WithEnv(env []string) ExecOption {
	return func(l *ExecLauncher) {
		l.env = env
	}
}

// WithOutputGrace sets how long stdout and stderr stay readable after the
// child exits or ctx is done. Defaults to defaults.OutputDrainGrace.
func WithOutputGrace(d time.Duration) ExecOption {
	return func(l *ExecLauncher) {
		if d > 0 {
			l.grace = d
		}
	}
}

// NewExecLauncher returns a Launcher backed by os/exec.
func NewExecLauncher(opts ...ExecOption) *ExecLauncher {
	l := &ExecLauncher{
		exec:  utilexec.New(),
		grace: defaults.OutputDrainGrace,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts name with args. The child is killed when ctx is done.
//
// All three standard streams are *os.File pipes owned by the launcher, so
// the exec package starts no copy goroutines and Wait never blocks on a
// descendant that inherited them. Output readers are closed a grace period
// after the child exits or ctx is done, whichever comes first.
func (l *ExecLauncher) Launch(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := l.exec.CommandContext(ctx, name, args...)
	if l.env != nil {
		cmd.SetEnv(l.env)
	}

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create stdin pipe", err)
	}
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		closeAll(stdinR, stdinW)
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create stdout pipe", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdinR, stdinW, stdoutR, stdoutW)
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create stderr pipe", err)
	}
	cmd.SetStdin(stdinR)
	cmd.SetStdout(stdoutW)
	cmd.SetStderr(stderrW)

	if err := cmd.Start(); err != nil {
		closeAll(stdinR, stdinW, stdoutR, stdoutW, stderrR, stderrW)
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, "canceled before start", ctx.Err())
		}
		return nil, LaunchFailure(name, err)
	}

	// The child holds its own copies of these ends.
	closeAll(stdinR, stdoutW, stderrW)

	p := &execProcess{
		ctx:      ctx,
		stdin:    &inputPipe{w: stdinW},
		stdout:   stdoutR,
		stderr:   stderrR,
		exited:   make(chan struct{}),
		released: make(chan struct{}),
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.exited)
	}()
	go p.closeOutputAfter(l.grace)
	return p, nil
}

type execProcess struct {
	ctx    context.Context
	stdin  *inputPipe
	stdout *os.File
	stderr *os.File

	exited  chan struct{}
	waitErr error

	release  sync.Once
	released chan struct{}
}

func (p *execProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *execProcess) Stdout() io.Reader     { return p.stdout }
func (p *execProcess) Stderr() io.Reader     { return p.stderr }

// closeOutputAfter unblocks readers held open by descendants of the child.
func (p *execProcess) closeOutputAfter(grace time.Duration) {
	select {
	case <-p.exited:
	case <-p.ctx.Done():
	case <-p.released:
		return
	}

	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-t.C:
		p.releaseOutput()
	case <-p.released:
	}
}

func (p *execProcess) releaseOutput() {
	p.release.Do(func() {
		closeAll(p.stdout, p.stderr)
		close(p.released)
	})
}

func (p *execProcess) Wait() (int, error) {
	<-p.exited
	p.releaseOutput()
	_ = p.stdin.Close()

	err := p.waitErr
	if err == nil {
		return 0, nil
	}

	var exitErr utilexec.ExitError
	if stderrors.As(err, &exitErr) {
		if !exitErr.Exited() && p.ctx.Err() != nil {
			return exitErr.ExitStatus(), errors.Wrap(errors.ErrCodeCanceled,
				"process killed on cancellation", p.ctx.Err())
		}
		return exitErr.ExitStatus(), nil
	}

	return -1, errors.Wrap(errors.ErrCodeInternal, "failed waiting for process", err)
}

// inputPipe is the parent's end of the child's stdin.
type inputPipe struct {
	mu     sync.Mutex
	w      *os.File
	closed bool
}

func (p *inputPipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return 0, io.ErrClosedPipe
	}
	return p.w.Write(b)
}

func (p *inputPipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.w.Close()
}

func closeAll(closers ...io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
