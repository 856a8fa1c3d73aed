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
	"io"

	"github.com/NVIDIA/kubedrive/pkg/errors"
)

// Process is a handle to a running child process.
//
// Stdout and Stderr must be read until EOF before Wait is called, and Stdin
// should be closed once all input has been written; writes after Close fail
// with io.ErrClosedPipe. Implementations may close the output readers once
// the process has exited, so readers treat os.ErrClosed as EOF.
type Process interface {
	Stdin() io.WriteCloser
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exits and returns its exit code.
	Wait() (int, error)
}

// Launcher starts external processes.
type Launcher interface {
	Launch(ctx context.Context, name string, args ...string) (Process, error)
}

// LaunchFailure wraps cause as a launch failure for binary name.
func LaunchFailure(name string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeLaunchFailure,
		"failed to start "+name, cause, map[string]any{"binary": name})
}

// IsLaunchFailure reports whether err is a launch failure.
func IsLaunchFailure(err error) bool {
	return errors.Is(err, errors.ErrCodeLaunchFailure)
}

// IsCanceled reports whether err signals a process killed on cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, errors.ErrCodeCanceled)
}
