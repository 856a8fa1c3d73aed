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

// Package process is the low-level primitive for running an external binary
// with a fixed argument vector and access to its three standard streams.
//
// A Launcher starts exactly one OS process per call and returns a Process
// handle. A non-zero exit code is a normal value returned by Process.Wait;
// only the failure to start the binary at all is an error, reported with
// errors.ErrCodeLaunchFailure so callers can tell "kubectl is not installed"
// apart from "kubectl said no".
//
// Usage:
//
//	l := process.NewExecLauncher()
//	p, err := l.Launch(ctx, "kubectl", "cluster-info")
//	if err != nil {
//	    return err // launch failure
//	}
//	_ = p.Stdin().Close()
//	go io.Copy(os.Stdout, p.Stdout())
//	go io.Copy(os.Stderr, p.Stderr())
//	code, err := p.Wait()
//
// Canceling ctx kills the child; Wait then returns errors.ErrCodeCanceled.
//
// Tests use the scripted fake in the processtest subpackage.
package process
