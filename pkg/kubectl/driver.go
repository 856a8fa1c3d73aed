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
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/process"
	"golang.org/x/sync/errgroup"
)

// Driver runs kubectl commands and relays their output.
type Driver struct {
	binary   string
	launcher process.Launcher
	logger   *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithBinary sets the kubectl executable. Bare names are looked up on PATH.
func WithBinary(binary string) Option {
	return func(d *Driver) {
		if binary != "" {
			d.binary = binary
		}
	}
}

// WithLauncher replaces the process launcher, typically with a fake in tests.
func WithLauncher(l process.Launcher) Option {
	return func(d *Driver) {
		if l != nil {
			d.launcher = l
		}
	}
}

// WithLogger sets the logger for lifecycle messages. Output chunks are not
// logged here; use event.NewLogSink for that.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a Driver that runs "kubectl" from PATH unless configured otherwise.
func New(opts ...Option) *Driver {
	d := &Driver{
		binary: defaults.KubectlBinary,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.launcher == nil {
		d.launcher = process.NewExecLauncher()
	}
	return d
}

// Binary returns the configured kubectl executable.
func (d *Driver) Binary() string { return d.binary }

// StartApply validates the target and starts `kubectl apply --filename -`
// with manifest on stdin. An invalid target returns an error without
// launching anything or emitting events.
func (d *Driver) StartApply(ctx context.Context, t Target, manifest Manifest, sink event.Sink) (*Invocation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return d.Start(ctx, Command{Operation: OpApply, Args: ApplyArgs(t), Input: manifest}, sink), nil
}

// Apply is StartApply followed by Wait.
func (d *Driver) Apply(ctx context.Context, t Target, manifest Manifest, sink event.Sink) (int, error) {
	inv, err := d.StartApply(ctx, t, manifest, sink)
	if err != nil {
		return -1, err
	}
	return inv.Wait()
}

// StartRolloutStatus starts `kubectl rollout status deployments/<name>`.
func (d *Driver) StartRolloutStatus(ctx context.Context, ref DeploymentRef, sink event.Sink) (*Invocation, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return d.Start(ctx, Command{Operation: OpRolloutStatus, Args: RolloutStatusArgs(ref.Target, ref.Name)}, sink), nil
}

// RolloutStatus is StartRolloutStatus followed by Wait. It returns when
// kubectl exits or ctx is canceled.
func (d *Driver) RolloutStatus(ctx context.Context, t Target, name string, sink event.Sink) (int, error) {
	inv, err := d.StartRolloutStatus(ctx, DeploymentRef{Target: t, Name: name}, sink)
	if err != nil {
		return -1, err
	}
	return inv.Wait()
}

// Exec runs cmd to completion. Callers that build their own argument
// vectors, such as preflight checks, use it directly.
func (d *Driver) Exec(ctx context.Context, cmd Command, sink event.Sink) (int, error) {
	return d.Start(ctx, cmd, sink).Wait()
}

// Start launches cmd in the background and returns its Invocation. A nil
// sink discards events.
func (d *Driver) Start(ctx context.Context, cmd Command, sink event.Sink) *Invocation {
	inv := newInvocation(cmd)
	go d.run(ctx, inv, event.OrDiscard(sink))
	return inv
}

func (d *Driver) run(ctx context.Context, inv *Invocation, sink event.Sink) {
	cmd := inv.Command
	op := string(cmd.Operation)
	log := d.logger.With("invocation", inv.ID, "operation", op)

	invocationsInFlight.WithLabelValues(op).Inc()
	defer invocationsInFlight.WithLabelValues(op).Dec()

	_ = inv.advance(StateLaunching)
	log.Debug("launching kubectl", "command", cmd.Display(d.binary))

	proc, err := d.launcher.Launch(ctx, d.binary, cmd.Args...)
	if err != nil {
		to := StateLaunchFailed
		switch {
		case process.IsCanceled(err):
			to = StateCanceled
		case !process.IsLaunchFailure(err):
			err = process.LaunchFailure(d.binary, err)
		}
		_ = inv.finish(to, -1, err)
		d.record(log, inv, -1, err)
		return
	}
	_ = inv.advance(StateStreaming)

	emit := serialized(sink)
	emit(event.New(event.StreamStdin, cmd.Display(d.binary)))

	var g errgroup.Group
	g.Go(func() error {
		writeInput(proc.Stdin(), cmd.Input)
		return nil
	})
	g.Go(func() error { return relay(proc.Stdout(), event.StreamStdout, emit) })
	g.Go(func() error { return relay(proc.Stderr(), event.StreamStderr, emit) })
	relayErr := g.Wait()

	code, waitErr := proc.Wait()
	switch {
	case process.IsCanceled(waitErr):
		_ = inv.finish(StateCanceled, -1, waitErr)
	case waitErr != nil:
		_ = inv.finish(StateCompleted, code, waitErr)
	case relayErr != nil:
		_ = inv.finish(StateCompleted, code, relayErr)
	default:
		_ = inv.finish(StateCompleted, code, nil)
	}
	d.record(log, inv, code, inv.Err())
}

// record logs and counts a terminal invocation.
func (d *Driver) record(log *slog.Logger, inv *Invocation, code int, err error) {
	state := inv.State()

	op := string(inv.Command.Operation)
	duration := inv.Duration()
	invocationsTotal.WithLabelValues(op, resultLabel(state, code, err)).Inc()
	invocationDuration.WithLabelValues(op).Observe(duration.Seconds())

	switch {
	case state == StateLaunchFailed:
		log.Warn("kubectl launch failed", "binary", d.binary, "error", err)
	case state == StateCanceled:
		log.Info("kubectl canceled", "duration", duration)
	case err != nil:
		log.Warn("kubectl relay failed", "exitCode", code, "error", err)
	default:
		log.Debug("kubectl finished", "exitCode", code, "duration", duration)
	}
}

// serialized returns an emitter that delivers to sink one event at a time.
func serialized(sink event.Sink) func(event.Event) {
	var mu sync.Mutex
	return func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		progressEventsTotal.WithLabelValues(e.WrittenTo.String()).Inc()
		sink.Emit(e)
	}
}

// writeInput writes the manifest and closes stdin. Write errors are ignored:
// a child that exits without reading its input reports through its exit code.
func writeInput(w io.WriteCloser, input Manifest) {
	defer w.Close()
	if input == "" {
		return
	}
	_, _ = io.WriteString(w, string(input))
}

// relay reads r until EOF and emits each non-blank chunk. A reader closed
// by the launcher after the child exits counts as EOF.
func relay(r io.Reader, stream event.Stream, emit func(event.Event)) error {
	buf := make([]byte, defaults.RelayBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if content := strings.TrimRightFunc(string(buf[:n]), unicode.IsSpace); content != "" {
				emit(event.New(stream, content))
			}
		}
		switch {
		case err == nil:
		case stderrors.Is(err, io.EOF), stderrors.Is(err, os.ErrClosed), stderrors.Is(err, io.ErrClosedPipe):
			return nil
		default:
			return errors.WrapWithContext(errors.ErrCodeInternal, "failed to read kubectl output", err,
				map[string]any{"stream": stream.String()})
		}
	}
}
