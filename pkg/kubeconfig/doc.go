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

// Package kubeconfig resolves kubeconfig paths and inspects their contents.
//
// Paths handed to the driver are interpreted relative to the operator's home
// directory: "~/.kube/config", ".kube/config" and "/abs/path" are all
// accepted. ResolvePath applies that rule; every kubectl invocation and the
// local config check use the resolved path.
//
// Contexts reads the kubeconfig with client-go's clientcmd loader so the
// CLI and HTTP API can list the contexts an operator may target, and Suggest
// offers close matches when a requested context is missing.
package kubeconfig
