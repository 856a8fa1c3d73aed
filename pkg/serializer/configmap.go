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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
	"k8s.io/client-go/kubernetes"
)

// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// FieldManager is the server-side apply field manager for ConfigMap writes.
const FieldManager = "kubedrive"

// ConfigMapWriter stores a serialized document in a ConfigMap, creating or
// updating it with server-side apply.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format

	kubeconfig  string
	kubeContext string
	client      kubernetes.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeconfig selects the kubeconfig and context used to reach the cluster.
func WithKubeconfig(path, kubeContext string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
		w.kubeContext = kubeContext
	}
}

// WithKubeClient uses c instead of building a client from the kubeconfig.
func WithKubeClient(c kubernetes.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) { w.client = c }
}

// NewConfigMapWriter returns a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{namespace: namespace, name: name, format: orJSON(format)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize applies a ConfigMap holding v under data key "report.<ext>"
// along with its format and a UTC timestamp.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	content, err := Marshal(w.format, v)
	if err != nil {
		return err
	}

	c := w.client
	if c == nil {
		c, _, err = client.Build(w.kubeconfig, w.kubeContext)
		if err != nil {
			return err
		}
	}

	ext := string(w.format)
	if w.format == FormatTable {
		ext = "txt"
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "kubedrive",
			"app.kubernetes.io/managed-by": FieldManager,
		}).
		WithData(map[string]string{
			"report." + ext: string(content),
			"format":        string(w.format),
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		})

	slog.Debug("applying ConfigMap", "namespace", w.namespace, "name", w.name, "format", w.format)

	if _, err := c.CoreV1().ConfigMaps(w.namespace).Apply(ctx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	}); err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error { return nil }

// ParseConfigMapURI splits cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	rest, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: must start with %s", uri, ConfigMapURIScheme)
	}
	namespace, name, ok = strings.Cut(rest, "/")
	namespace, name = strings.TrimSpace(namespace), strings.TrimSpace(name)
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	return namespace, name, nil
}
