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

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"k8s.io/apimachinery/pkg/util/validation"
)

// ManifestPlaceholder stands in for manifest content wherever a command
// line is shown.
const ManifestPlaceholder = "<manifest>"

// Target identifies the cluster, context, and namespace an invocation acts on.
type Target struct {
	Kubeconfig string `json:"kubeconfig" yaml:"kubeconfig"`
	Context    string `json:"context" yaml:"context"`
	Namespace  string `json:"namespace" yaml:"namespace"`
}

// Validate requires every field and a DNS-1123 namespace.
func (t Target) Validate() error {
	var missing []string
	if strings.TrimSpace(t.Kubeconfig) == "" {
		missing = append(missing, "kubeconfig")
	}
	if strings.TrimSpace(t.Context) == "" {
		missing = append(missing, "context")
	}
	if strings.TrimSpace(t.Namespace) == "" {
		missing = append(missing, "namespace")
	}
	if len(missing) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"target is missing "+strings.Join(missing, ", "),
			map[string]any{"missing": missing})
	}

	if msgs := validation.IsDNS1123Label(t.Namespace); len(msgs) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid namespace %q: %s", t.Namespace, strings.Join(msgs, "; ")),
			map[string]any{"namespace": t.Namespace})
	}
	return nil
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.Context, t.Namespace)
}

// DeploymentRef names a Deployment within a Target.
type DeploymentRef struct {
	Target Target `json:"target" yaml:"target"`
	Name   string `json:"name" yaml:"name"`
}

// Validate checks the target and requires a DNS-1123 subdomain name.
func (d DeploymentRef) Validate() error {
	if err := d.Target.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "deployment name is required")
	}
	if msgs := validation.IsDNS1123Subdomain(d.Name); len(msgs) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid deployment name %q: %s", d.Name, strings.Join(msgs, "; ")),
			map[string]any{"deployment": d.Name})
	}
	return nil
}

func (d DeploymentRef) String() string {
	return d.Target.String() + "/" + d.Name
}

// Manifest is an opaque Kubernetes manifest. It is never parsed, and it
// formats and logs as ManifestPlaceholder.
type Manifest string

func (m Manifest) String() string { return ManifestPlaceholder }

// LogValue implements slog.LogValuer.
func (m Manifest) LogValue() slog.Value { return slog.StringValue(ManifestPlaceholder) }

// Bytes returns the raw manifest content.
func (m Manifest) Bytes() []byte { return []byte(m) }
