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

import "github.com/NVIDIA/kubedrive/pkg/kubeconfig"

// Argument vectors for every kubectl invocation the driver issues. The
// kubeconfig path is always resolved against the home directory first.

func ApplyArgs(t Target) []string {
	return append(scoped(t), "apply", "--filename", "-")
}

func RolloutStatusArgs(t Target, name string) []string {
	return append(scoped(t), "rollout", "status", "deployments/"+name)
}

func ContextArgs(path, context string) []string {
	return []string{"--kubeconfig", kubeconfig.ResolvePath(path), "config", "get-contexts", context}
}

func ClusterInfoArgs(path, context string) []string {
	return []string{"--kubeconfig", kubeconfig.ResolvePath(path), "--context", context, "cluster-info"}
}

func NamespaceArgs(path, context, namespace string) []string {
	return []string{"--kubeconfig", kubeconfig.ResolvePath(path), "--context", context, "get", "namespace", namespace}
}

func DeploymentArgs(path, context, namespace, name string) []string {
	return []string{
		"--kubeconfig", kubeconfig.ResolvePath(path),
		"--context", context,
		"--namespace", namespace,
		"get", "deployment", name,
	}
}

func ClientVersionArgs() []string {
	return []string{"version", "--client", "-o", "json"}
}

func scoped(t Target) []string {
	return []string{
		"--kubeconfig", kubeconfig.ResolvePath(t.Kubeconfig),
		"--context", t.Context,
		"--namespace", t.Namespace,
	}
}
