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

// Package client builds Kubernetes API clients for a kubeconfig and context.
//
// The driver itself talks to clusters only through kubectl. This client is
// used for auxiliary writes such as publishing a preflight report to a
// ConfigMap, and it resolves the kubeconfig exactly like the driver does:
//
//	clientset, cfg, err := client.Build("~/.kube/config", "staging")
//	if err != nil {
//	    return err
//	}
//
// An empty path falls back to $KUBECONFIG, then ~/.kube/config, then the
// in-cluster service account. Clients are cached per (path, context) pair.
package client
