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

package client

import (
	"fmt"
	"os"
	"sync"

	"github.com/NVIDIA/kubedrive/pkg/kubeconfig"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

type Interface = kubernetes.Interface

type key struct{ path, context string }

type entry struct {
	client *kubernetes.Clientset
	config *rest.Config
}

var (
	mu    sync.Mutex
	cache = map[key]entry{}
)

// Build returns a cached clientset for the kubeconfig at path using
// kubeContext, or the kubeconfig's current context when empty.
func Build(path, kubeContext string) (Interface, *rest.Config, error) {
	path = DiscoverPath(path)
	k := key{path: path, context: kubeContext}

	mu.Lock()
	defer mu.Unlock()
	if e, ok := cache[k]; ok {
		return e.client, e.config, nil
	}

	cfg, err := RESTConfig(path, kubeContext)
	if err != nil {
		return nil, nil, err
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	cache[k] = entry{client: cs, config: cfg}
	return cs, cfg, nil
}

// DiscoverPath resolves path, falling back to $KUBECONFIG and the default
// location. It returns "" when no kubeconfig file exists.
func DiscoverPath(path string) string {
	if path == "" {
		path = os.Getenv("KUBECONFIG")
	}
	if path != "" {
		return kubeconfig.ResolvePath(path)
	}
	if def := kubeconfig.ResolvePath(""); kubeconfig.Readable(def) {
		return def
	}
	return ""
}

// RESTConfig loads a rest.Config. An empty path uses in-cluster config.
func RESTConfig(path, kubeContext string) (*rest.Config, error) {
	if path == "" {
		cfg, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
		return cfg, nil
	}

	loader := &clientcmd.ClientConfigLoadingRules{ExplicitPath: path}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loader, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
	}
	return cfg, nil
}
