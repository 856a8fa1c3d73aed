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

package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubeconfig"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/version"
)

// maxSuggestions caps the "did you mean" list for an unknown context.
const maxSuggestions = 3

// Executor runs one kubectl command. *kubectl.Driver implements it.
type Executor interface {
	Exec(ctx context.Context, cmd kubectl.Command, sink event.Sink) (int, error)
}

// Verifier answers preflight checks.
type Verifier struct {
	exec     Executor
	sink     event.Sink
	logger   *slog.Logger
	contexts func(path string) ([]string, error)
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithSink receives the events of every kubectl check.
func WithSink(s event.Sink) Option {
	return func(v *Verifier) { v.sink = event.OrDiscard(s) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithContextLister overrides how context names are read for suggestions.
func WithContextLister(fn func(path string) ([]string, error)) Option {
	return func(v *Verifier) {
		if fn != nil {
			v.contexts = fn
		}
	}
}

// New returns a Verifier that runs checks through exec.
func New(exec Executor, opts ...Option) *Verifier {
	v := &Verifier{
		exec:     exec,
		sink:     event.Discard,
		logger:   slog.Default(),
		contexts: kubeconfig.ContextNames,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CheckConfig reports whether the kubeconfig at path is a readable file.
// The path is resolved against the home directory. It never fails.
func (v *Verifier) CheckConfig(path string) bool {
	return kubeconfig.Readable(path)
}

// CheckContext reports whether context is defined in the kubeconfig.
func (v *Verifier) CheckContext(ctx context.Context, path, contextName string) (bool, error) {
	return v.check(ctx, kubectl.OpCheckContext, kubectl.ContextArgs(path, contextName))
}

// CheckCluster reports whether the cluster behind context is reachable.
func (v *Verifier) CheckCluster(ctx context.Context, path, contextName string) (bool, error) {
	return v.check(ctx, kubectl.OpCheckCluster, kubectl.ClusterInfoArgs(path, contextName))
}

// CheckNamespace reports whether namespace exists.
func (v *Verifier) CheckNamespace(ctx context.Context, path, contextName, namespace string) (bool, error) {
	return v.check(ctx, kubectl.OpCheckNamespace, kubectl.NamespaceArgs(path, contextName, namespace))
}

// CheckDeployment reports whether the named deployment exists in namespace.
func (v *Verifier) CheckDeployment(ctx context.Context, path, contextName, namespace, name string) (bool, error) {
	return v.check(ctx, kubectl.OpCheckDeployment, kubectl.DeploymentArgs(path, contextName, namespace, name))
}

// CheckClient reports whether the kubectl client is at least minimum. It
// also returns the version that was found.
func (v *Verifier) CheckClient(ctx context.Context, minimum version.Version) (bool, version.Version, error) {
	rec := event.NewRecorder()
	code, err := v.exec.Exec(ctx, kubectl.Command{
		Operation: kubectl.OpClientVersion,
		Args:      kubectl.ClientVersionArgs(),
	}, event.Multi(v.sink, rec))
	if err != nil {
		return false, version.Version{}, err
	}
	if code != 0 {
		return false, version.Version{}, nil
	}

	found, err := version.ParseClient([]byte(rec.Content(event.StreamStdout)))
	if err != nil {
		return false, version.Version{}, errors.Wrap(errors.ErrCodeInternal, "unreadable kubectl version output", err)
	}
	return found.AtLeast(minimum), found, nil
}

func (v *Verifier) check(ctx context.Context, op kubectl.Operation, args []string) (bool, error) {
	code, err := v.exec.Exec(ctx, kubectl.Command{Operation: op, Args: args}, v.sink)
	if err != nil {
		return false, err
	}
	v.logger.Debug("preflight check", "check", string(op), "exitCode", code)
	return code == 0, nil
}

// Run performs the checks selected by req in dependency order. It stops at
// the first failing check and reports the remaining ones as skipped. An
// error is returned with the partial report when a check cannot run.
func (v *Verifier) Run(ctx context.Context, req Request) (*Report, error) {
	if err := req.Target.Validate(); err != nil {
		return nil, err
	}
	if req.Deployment != "" {
		if err := (kubectl.DeploymentRef{Target: req.Target, Name: req.Deployment}).Validate(); err != nil {
			return nil, err
		}
	}

	var minimum version.Version
	if req.MinClientVersion != "" {
		m, err := version.Parse(req.MinClientVersion)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid minimum client version", err)
		}
		minimum = m
	}

	t := req.Target
	steps := []struct {
		check Check
		skip  bool
		run   func() (bool, string, error)
	}{
		{CheckConfigName, false, func() (bool, string, error) {
			if v.CheckConfig(t.Kubeconfig) {
				return true, "", nil
			}
			return false, fmt.Sprintf("kubeconfig %s is not a readable file", kubeconfig.ResolvePath(t.Kubeconfig)), nil
		}},
		{CheckClientName, req.MinClientVersion == "", func() (bool, string, error) {
			ok, found, err := v.CheckClient(ctx, minimum)
			if err != nil || ok {
				return ok, "", err
			}
			if found == (version.Version{}) {
				return false, "kubectl version could not be determined", nil
			}
			return false, fmt.Sprintf("kubectl %s is older than required %s", found, minimum), nil
		}},
		{CheckContextName, false, func() (bool, string, error) {
			ok, err := v.CheckContext(ctx, t.Kubeconfig, t.Context)
			if err != nil || ok {
				return ok, "", err
			}
			return false, fmt.Sprintf("context %q not found in kubeconfig", t.Context), nil
		}},
		{CheckClusterName, false, func() (bool, string, error) {
			ok, err := v.CheckCluster(ctx, t.Kubeconfig, t.Context)
			if err != nil || ok {
				return ok, "", err
			}
			return false, fmt.Sprintf("cluster for context %q is not reachable", t.Context), nil
		}},
		{CheckNamespaceName, false, func() (bool, string, error) {
			ok, err := v.CheckNamespace(ctx, t.Kubeconfig, t.Context, t.Namespace)
			if err != nil || ok {
				return ok, "", err
			}
			return false, fmt.Sprintf("namespace %q does not exist", t.Namespace), nil
		}},
		{CheckDeploymentName, req.Deployment == "", func() (bool, string, error) {
			ok, err := v.CheckDeployment(ctx, t.Kubeconfig, t.Context, t.Namespace, req.Deployment)
			if err != nil || ok {
				return ok, "", err
			}
			return false, fmt.Sprintf("deployment %q does not exist in namespace %q", req.Deployment, t.Namespace), nil
		}},
	}

	report := &Report{Passed: true, Results: make([]Result, 0, len(steps))}
	for _, step := range steps {
		if step.skip || !report.Passed {
			report.Results = append(report.Results, Result{Check: step.check, Skipped: true})
			continue
		}

		start := time.Now()
		ok, msg, err := step.run()
		res := Result{Check: step.check, Passed: ok, Duration: time.Since(start), Message: msg}
		report.Results = append(report.Results, res)

		if err != nil {
			report.Passed = false
			v.logger.Warn("preflight check could not run", "check", string(step.check), "error", err)
			return report, err
		}
		if !ok {
			report.Passed = false
			v.logger.Info("preflight check failed", "check", string(step.check), "message", msg)
			if step.check == CheckContextName {
				report.Suggestions = v.suggest(t.Kubeconfig, t.Context)
			}
		}
	}
	return report, nil
}

func (v *Verifier) suggest(path, contextName string) []string {
	names, err := v.contexts(path)
	if err != nil {
		v.logger.Debug("unable to list contexts for suggestions", "error", err)
		return nil
	}
	return kubeconfig.Suggest(contextName, names, maxSuggestions)
}
