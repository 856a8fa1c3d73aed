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

// Package preflight verifies that a deployment target is usable before
// anything is applied to it.
//
// Each check is a yes/no question answered by kubectl's exit code:
//
//	config      the kubeconfig file exists and is readable (local, no kubectl)
//	client      kubectl is at least a minimum version (opt-in)
//	context     the context is defined in the kubeconfig
//	cluster     the cluster behind the context answers
//	namespace   the namespace exists
//	deployment  the deployment exists (only when one is named)
//
// A false answer is a result. An error means kubectl could not be run at
// all. Run executes the checks in the order above, stops at the first
// failure, and marks the rest as skipped.
//
// Every kubectl check streams its events to the verifier's sink, which
// discards them unless WithSink is given.
package preflight
