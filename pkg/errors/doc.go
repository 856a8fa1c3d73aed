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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The driver only ever returns errors for infrastructure faults. A kubectl
// process that ran and exited non-zero is a result, not an error; a kubectl
// binary that could not be started is reported with ErrCodeLaunchFailure.
//
// Example usage:
//
//	code, err := driver.Apply(ctx, target, manifest, sink)
//	if errors.Is(err, errors.ErrCodeLaunchFailure) {
//	    // kubectl is missing or not executable
//	}
package errors
