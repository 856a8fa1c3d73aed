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
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/process"
	"github.com/NVIDIA/kubedrive/pkg/process/processtest"
	"github.com/NVIDIA/kubedrive/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempKubeconfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("apiVersion: v1\nkind: Config\n"), 0o600))
	return path
}

// failing returns a launcher where any invocation whose arguments contain
// one of words exits 1 and everything else exits 0.
func failing(words ...string) *processtest.Launcher {
	return processtest.NewFunc(func(_ string, args []string) processtest.Script {
		for _, w := range words {
			if slices.Contains(args, w) {
				return processtest.Script{Stderr: []string{"Error from server (NotFound)"}, ExitCode: 1}
			}
		}
		if slices.Contains(args, "version") {
			return processtest.Script{Stdout: []string{`{"clientVersion":{"major":"1","minor":"30","gitVersion":"v1.30.2"}}`}}
		}
		return processtest.Script{Stdout: []string{"ok"}}
	})
}

func newVerifier(l process.Launcher, opts ...Option) *Verifier {
	return New(kubectl.New(kubectl.WithLauncher(l)), opts...)
}

func TestCheckConfig(t *testing.T) {
	fake := failing()
	v := newVerifier(fake)

	assert.True(t, v.CheckConfig(tempKubeconfig(t)))
	assert.False(t, v.CheckConfig(filepath.Join(t.TempDir(), "missing")))
	assert.False(t, v.CheckConfig(t.TempDir()))
	assert.Empty(t, fake.Calls(), "config check is local")
}

func TestKubectlChecks(t *testing.T) {
	tests := []struct {
		name     string
		launcher *processtest.Launcher
		run      func(v *Verifier) (bool, error)
		wantArgs []string
		want     bool
	}{
		{
			name:     "context present",
			launcher: failing(),
			run:      func(v *Verifier) (bool, error) { return v.CheckContext(t.Context(), "/kc", "prod") },
			wantArgs: []string{"--kubeconfig", "/kc", "config", "get-contexts", "prod"},
			want:     true,
		},
		{
			name:     "context missing",
			launcher: failing("get-contexts"),
			run:      func(v *Verifier) (bool, error) { return v.CheckContext(t.Context(), "/kc", "prod") },
			wantArgs: []string{"--kubeconfig", "/kc", "config", "get-contexts", "prod"},
		},
		{
			name:     "cluster unreachable",
			launcher: failing("cluster-info"),
			run:      func(v *Verifier) (bool, error) { return v.CheckCluster(t.Context(), "/kc", "prod") },
			wantArgs: []string{"--kubeconfig", "/kc", "--context", "prod", "cluster-info"},
		},
		{
			name:     "namespace present",
			launcher: failing(),
			run:      func(v *Verifier) (bool, error) { return v.CheckNamespace(t.Context(), "/kc", "prod", "web") },
			wantArgs: []string{"--kubeconfig", "/kc", "--context", "prod", "get", "namespace", "web"},
			want:     true,
		},
		{
			name:     "deployment missing",
			launcher: failing("deployment"),
			run: func(v *Verifier) (bool, error) {
				return v.CheckDeployment(t.Context(), "/kc", "prod", "web", "api")
			},
			wantArgs: []string{"--kubeconfig", "/kc", "--context", "prod", "--namespace", "web", "get", "deployment", "api"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run(newVerifier(tt.launcher))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			calls := tt.launcher.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantArgs, calls[0].Args)
		})
	}
}

func TestCheckLaunchFailure(t *testing.T) {
	v := newVerifier(processtest.New(processtest.Script{LaunchErr: os.ErrPermission}))

	ok, err := v.CheckCluster(t.Context(), "/kc", "prod")
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, process.IsLaunchFailure(err))
}

func TestChecksEmitToSink(t *testing.T) {
	rec := event.NewRecorder()
	v := newVerifier(failing(), WithSink(rec))

	_, err := v.CheckNamespace(t.Context(), "/kc", "prod", "web")
	require.NoError(t, err)

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, event.StreamStdin, events[0].WrittenTo)
	assert.Equal(t, "kubectl --kubeconfig /kc --context prod get namespace web", events[0].Content)
	assert.Equal(t, "ok", events[1].Content)
}

func TestCheckClient(t *testing.T) {
	v := newVerifier(failing())

	ok, found, err := v.CheckClient(t.Context(), version.MustParse("1.29"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, version.New(1, 30, 2), found)

	ok, _, err = v.CheckClient(t.Context(), version.MustParse("1.31"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckClient_MultiChunkOutput(t *testing.T) {
	fake := processtest.New(processtest.Script{Stdout: []string{
		"{\n  \"clientVersion\": {\n",
		"    \"gitVersion\": \"v1.31.0\"\n  }\n}\n",
	}})
	v := newVerifier(fake)

	ok, found, err := v.CheckClient(t.Context(), version.MustParse("1.30"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, version.New(1, 31, 0), found)
}

func TestRun_AllPass(t *testing.T) {
	fake := failing()
	v := newVerifier(fake)

	report, err := v.Run(t.Context(), Request{
		Target:           kubectl.Target{Kubeconfig: tempKubeconfig(t), Context: "prod", Namespace: "web"},
		Deployment:       "api",
		MinClientVersion: "1.28",
	})
	require.NoError(t, err)
	assert.True(t, report.Passed)
	require.Len(t, report.Results, 6)
	for _, r := range report.Results {
		assert.True(t, r.Passed, "check %s", r.Check)
		assert.False(t, r.Skipped)
	}
	_, failed := report.Failed()
	assert.False(t, failed)
	assert.Len(t, fake.Calls(), 5)
}

func TestRun_OptionalChecksSkipped(t *testing.T) {
	fake := failing()
	report, err := newVerifier(fake).Run(t.Context(), Request{
		Target: kubectl.Target{Kubeconfig: tempKubeconfig(t), Context: "prod", Namespace: "web"},
	})
	require.NoError(t, err)
	assert.True(t, report.Passed)

	skipped := map[Check]bool{}
	for _, r := range report.Results {
		skipped[r.Check] = r.Skipped
	}
	assert.True(t, skipped[CheckClientName])
	assert.True(t, skipped[CheckDeploymentName])
	assert.False(t, skipped[CheckClusterName])
	assert.Len(t, fake.Calls(), 3)
}

func TestRun_MissingConfigLaunchesNothing(t *testing.T) {
	fake := failing()
	report, err := newVerifier(fake).Run(t.Context(), Request{
		Target:     kubectl.Target{Kubeconfig: filepath.Join(t.TempDir(), "missing"), Context: "prod", Namespace: "web"},
		Deployment: "api",
	})
	require.NoError(t, err)
	assert.False(t, report.Passed)
	assert.Empty(t, fake.Calls())

	first, failed := report.Failed()
	require.True(t, failed)
	assert.Equal(t, CheckConfigName, first.Check)
	assert.Contains(t, first.Message, "not a readable file")
	for _, r := range report.Results[1:] {
		assert.True(t, r.Skipped, "check %s should be skipped", r.Check)
	}
}

func TestRun_UnknownContextSuggests(t *testing.T) {
	fake := failing("get-contexts")
	v := newVerifier(fake, WithContextLister(func(string) ([]string, error) {
		return []string{"production", "staging", "dev"}, nil
	}))

	report, err := v.Run(t.Context(), Request{
		Target: kubectl.Target{Kubeconfig: tempKubeconfig(t), Context: "prodution", Namespace: "web"},
	})
	require.NoError(t, err)
	assert.False(t, report.Passed)

	first, _ := report.Failed()
	assert.Equal(t, CheckContextName, first.Check)
	assert.Equal(t, []string{"production"}, report.Suggestions)
	assert.Len(t, fake.Calls(), 1, "checks after the failed context must not run")
}

func TestRun_LaunchFailureReturnsPartialReport(t *testing.T) {
	v := newVerifier(processtest.New(processtest.Script{LaunchErr: os.ErrNotExist}))

	report, err := v.Run(t.Context(), Request{
		Target: kubectl.Target{Kubeconfig: tempKubeconfig(t), Context: "prod", Namespace: "web"},
	})
	require.Error(t, err)
	assert.True(t, process.IsLaunchFailure(err))
	require.NotNil(t, report)
	assert.False(t, report.Passed)
	assert.Equal(t, CheckContextName, report.Results[len(report.Results)-1].Check)
}

func TestRun_InvalidRequest(t *testing.T) {
	v := newVerifier(failing())
	good := kubectl.Target{Kubeconfig: "/kc", Context: "prod", Namespace: "web"}

	tests := []struct {
		name string
		req  Request
	}{
		{"empty target", Request{}},
		{"bad deployment", Request{Target: good, Deployment: "Not Valid"}},
		{"bad version", Request{Target: good, MinClientVersion: "one.two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Run(t.Context(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidRequest))
		})
	}
}

func TestReportTable(t *testing.T) {
	report := &Report{
		Results: []Result{
			{Check: CheckConfigName, Passed: true},
			{Check: CheckContextName, Message: "context \"prd\" not found in kubeconfig"},
			{Check: CheckClusterName, Skipped: true},
		},
		Suggestions: []string{"prod"},
	}

	assert.Equal(t, []string{"CHECK", "STATUS", "DURATION", "MESSAGE"}, report.TableHeader())
	rows := report.TableRows()
	require.Len(t, rows, 4)
	assert.Equal(t, "passed", rows[0][1])
	assert.Equal(t, "failed", rows[1][1])
	assert.Equal(t, "skipped", rows[2][1])
	assert.Equal(t, "did you mean prod?", rows[3][3])
}
