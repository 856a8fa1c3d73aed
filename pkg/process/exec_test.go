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
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStub writes an executable shell script into a temp dir and returns its path.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

type output struct {
	stdout, stderr string
}

// drain reads both output streams to EOF, as Process requires before Wait.
func drain(p Process) output {
	var wg sync.WaitGroup
	var out, errOut bytes.Buffer
	wg.Add(2)
	go func() { defer wg.Done(); _, _ = io.Copy(&out, p.Stdout()) }()
	go func() { defer wg.Done(); _, _ = io.Copy(&errOut, p.Stderr()) }()
	wg.Wait()
	return output{stdout: out.String(), stderr: errOut.String()}
}

func TestExecLauncher_MissingBinary(t *testing.T) {
	l := NewExecLauncher()
	p, err := l.Launch(context.Background(), filepath.Join(t.TempDir(), "no-such-kubectl"), "version")
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, IsLaunchFailure(err), "expected launch failure, got %v", err)
}

func TestExecLauncher_NotExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubectl")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o644))

	_, err := NewExecLauncher().Launch(context.Background(), path)
	require.Error(t, err)
	assert.True(t, IsLaunchFailure(err))
}

func TestExecLauncher_ExitCode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"success", "exit 0", 0},
		{"failure", "exit 1", 1},
		{"killed convention", "exit 137", 137},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := writeStub(t, tt.body)
			p, err := NewExecLauncher().Launch(context.Background(), stub)
			require.NoError(t, err)
			require.NoError(t, p.Stdin().Close())
			drain(p)

			code, err := p.Wait()
			require.NoError(t, err, "non-zero exit must not be an error")
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestExecLauncher_EchoStdin(t *testing.T) {
	stub := writeStub(t, `cat; echo "done" >&2`)
	p, err := NewExecLauncher().Launch(context.Background(), stub, "apply", "--filename", "-")
	require.NoError(t, err)

	_, err = io.WriteString(p.Stdin(), "apiVersion: v1\n")
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Close())

	_, err = p.Stdin().Write([]byte("late"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	out := drain(p)
	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "apiVersion: v1\n", out.stdout)
	assert.Equal(t, "done\n", out.stderr)
}

func TestExecLauncher_Arguments(t *testing.T) {
	stub := writeStub(t, `for a in "$@"; do echo "$a"; done`)
	p, err := NewExecLauncher().Launch(context.Background(), stub, "--namespace", "team a", "get")
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Close())

	out := drain(p)
	_, err = p.Wait()
	require.NoError(t, err)
	assert.Equal(t, []string{"--namespace", "team a", "get"}, strings.Split(strings.TrimSpace(out.stdout), "\n"))
}

func TestExecLauncher_ChildIgnoresStdin(t *testing.T) {
	stub := writeStub(t, "exit 3")
	p, err := NewExecLauncher().Launch(context.Background(), stub)
	require.NoError(t, err)

	// Larger than a pipe buffer; must fail rather than block once the child is gone.
	done := make(chan error, 1)
	go func() {
		_, werr := p.Stdin().Write(bytes.Repeat([]byte("x"), 1<<20))
		done <- werr
	}()

	drain(p)
	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	select {
	case werr := <-done:
		assert.Error(t, werr)
	case <-time.After(5 * time.Second):
		t.Fatal("stdin write blocked after child exit")
	}
}

func TestExecLauncher_Cancel(t *testing.T) {
	stub := writeStub(t, "exec sleep 30")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, err := NewExecLauncher().Launch(ctx, stub)
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Close())

	time.AfterFunc(100*time.Millisecond, cancel)

	drain(p)
	_, err = p.Wait()
	require.Error(t, err)
	assert.True(t, IsCanceled(err), "expected canceled, got %v", err)
	assert.False(t, IsLaunchFailure(err))
}

func TestExecLauncher_OutputClosedAfterExit(t *testing.T) {
	stub := writeStub(t, "echo done\n(sleep 5) &\nexit 4")
	p, err := NewExecLauncher(WithOutputGrace(50*time.Millisecond)).Launch(context.Background(), stub)
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Close())

	start := time.Now()
	out := drain(p)
	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 4, code)
	assert.Equal(t, "done\n", out.stdout)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecLauncher_CanceledBeforeStart(t *testing.T) {
	stub := writeStub(t, "exit 0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecLauncher().Launch(ctx, stub)
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
}

func TestExecLauncher_Env(t *testing.T) {
	stub := writeStub(t, `echo "$KUBEDRIVE_TEST"`)
	p, err := NewExecLauncher(WithEnv([]string{"KUBEDRIVE_TEST=set"})).Launch(context.Background(), stub)
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Close())

	out := drain(p)
	_, err = p.Wait()
	require.NoError(t, err)
	assert.Equal(t, "set\n", out.stdout)
}
