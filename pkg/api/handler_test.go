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

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/process/processtest"
	"github.com/NVIDIA/kubedrive/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const applyBody = `{
  "target": {"kubeconfig": "/tmp/kc", "context": "staging", "namespace": "web"},
  "manifest": "apiVersion: v1\nkind: Secret\nstringData:\n  password: hunter2\n"
}`

const testKubeconfig = `apiVersion: v1
kind: Config
current-context: staging
clusters:
- name: staging-cluster
  cluster:
    server: https://staging.example.com
contexts:
- name: staging
  context:
    cluster: staging-cluster
    user: deployer
    namespace: web
- name: production
  context:
    cluster: staging-cluster
    user: deployer
users:
- name: deployer
  user:
    token: not-a-real-token
`

type sseFrame struct {
	ID    string
	Event string
	Data  string
}

func parseSSE(t *testing.T, body string) (frames []sseFrame, comments int) {
	t.Helper()
	var cur sseFrame
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if cur != (sseFrame{}) {
				frames = append(frames, cur)
			}
			cur = sseFrame{}
		case strings.HasPrefix(line, ":"):
			comments++
		case strings.HasPrefix(line, "id: "):
			cur.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			cur.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.Data = strings.TrimPrefix(line, "data: ")
		}
	}
	require.NoError(t, sc.Err())
	return frames, comments
}

func progressFrames(t *testing.T, frames []sseFrame) []ProgressFrame {
	t.Helper()
	var out []ProgressFrame
	for _, f := range frames {
		if f.Event != "progress" {
			continue
		}
		var p ProgressFrame
		require.NoError(t, json.Unmarshal([]byte(f.Data), &p))
		out = append(out, p)
	}
	return out
}

func resultFrame(t *testing.T, frames []sseFrame) ResultFrame {
	t.Helper()
	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	require.Equal(t, "result", last.Event, "last frame must be the result")
	var r ResultFrame
	require.NoError(t, json.Unmarshal([]byte(last.Data), &r))
	return r
}

func newHandler(fake *processtest.Launcher, opts ...HandlerOption) *Handler {
	return NewHandler(kubectl.New(kubectl.WithLauncher(fake)), opts...)
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func writeKubeconfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))
	return path
}

func TestHandleApply_StreamsEvents(t *testing.T) {
	fake := processtest.New(processtest.Script{
		Stdout: []string{"secret/db configured\n"},
		Stderr: []string{"Warning: deprecated field\n"},
	})
	h := newHandler(fake)

	rec := post(h.HandleApply, "/v1/apply", applyBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	invID := rec.Header().Get("X-Invocation-Id")
	require.NotEmpty(t, invID)

	frames, _ := parseSSE(t, rec.Body.String())
	progress := progressFrames(t, frames)
	require.Len(t, progress, 3)

	assert.Equal(t, event.StreamStdin, progress[0].WrittenTo)
	assert.Equal(t, "1", frames[0].ID)
	assert.True(t, strings.HasSuffix(progress[0].Content, " < <manifest>"))

	var streams []event.Stream
	for _, p := range progress {
		assert.Equal(t, invID, p.InvocationID)
		assert.NotContains(t, p.Content, "hunter2")
		streams = append(streams, p.WrittenTo)
	}
	assert.True(t, slices.Contains(streams, event.StreamStdout))
	assert.True(t, slices.Contains(streams, event.StreamStderr))

	result := resultFrame(t, frames)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "Completed", result.State)
	assert.Equal(t, invID, result.InvocationID)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Stdin, "hunter2")
}

func TestHandleApply_NonZeroExit(t *testing.T) {
	h := newHandler(processtest.New(processtest.Script{
		Stderr:   []string{"error: unable to recognize \"STDIN\"\n"},
		ExitCode: 1,
	}))

	rec := post(h.HandleApply, "/v1/apply", applyBody)
	require.Equal(t, http.StatusOK, rec.Code)

	frames, _ := parseSSE(t, rec.Body.String())
	assert.Equal(t, 1, resultFrame(t, frames).ExitCode)
}

func TestHandleApply_LaunchFailure(t *testing.T) {
	h := newHandler(processtest.New(processtest.Script{LaunchErr: os.ErrNotExist}))

	rec := post(h.HandleApply, "/v1/apply", applyBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "LAUNCH_FAILURE", decodeError(t, rec).Code)
}

func TestHandleApply_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"target":`},
		{"unknown field", `{"target":{"kubeconfig":"/tmp/kc","context":"c","namespace":"ns"},"manifest":"x","force":true}`},
		{"missing context", `{"target":{"kubeconfig":"/tmp/kc","namespace":"ns"},"manifest":"kind: List"}`},
		{"invalid namespace", `{"target":{"kubeconfig":"/tmp/kc","context":"c","namespace":"Not_Valid"},"manifest":"kind: List"}`},
		{"empty manifest", `{"target":{"kubeconfig":"/tmp/kc","context":"c","namespace":"ns"},"manifest":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := processtest.New(processtest.Script{})
			rec := post(newHandler(fake).HandleApply, "/v1/apply", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Code)
			assert.Empty(t, fake.Calls(), "nothing may launch for an invalid request")
		})
	}
}

func TestHandleApply_YAMLBody(t *testing.T) {
	fake := processtest.New(processtest.Script{Stdout: []string{"configmap/app created"}})
	body := `target:
  kubeconfig: /tmp/kc
  context: staging
  namespace: web
manifest: |
  apiVersion: v1
  kind: ConfigMap
`
	req := httptest.NewRequest(http.MethodPost, "/v1/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	newHandler(fake).HandleApply(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "apiVersion: v1\nkind: ConfigMap\n", calls[0].Stdin)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHandler(processtest.New(processtest.Script{}))

	for path, fn := range h.Routes() {
		method := http.MethodGet
		if path == "/v1/contexts" {
			method = http.MethodPost
		}
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(method, path, nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("Allow"), path)
	}
}

func TestHandleRollout_Streams(t *testing.T) {
	fake := processtest.New(processtest.Script{
		Stdout: []string{
			"Waiting for deployment \"api\" rollout to finish: 1 of 2 updated replicas are available...\n",
		},
	})
	h := newHandler(fake)

	rec := post(h.HandleRollout, "/v1/rollout",
		`{"target":{"kubeconfig":"/tmp/kc","context":"staging","namespace":"web"},"deployment":"api"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	frames, _ := parseSSE(t, rec.Body.String())
	progress := progressFrames(t, frames)
	require.Len(t, progress, 2)
	assert.Contains(t, progress[0].Content, "rollout status deployments/api")
	assert.Equal(t, 0, resultFrame(t, frames).ExitCode)

	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, kubectl.RolloutStatusArgs(
		kubectl.Target{Kubeconfig: "/tmp/kc", Context: "staging", Namespace: "web"}, "api"),
		fake.Calls()[0].Args)
}

func TestHandleRollout_InvalidDeployment(t *testing.T) {
	fake := processtest.New(processtest.Script{})
	rec := post(newHandler(fake).HandleRollout, "/v1/rollout",
		`{"target":{"kubeconfig":"/tmp/kc","context":"staging","namespace":"web"},"deployment":"API!"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.Calls())
}

func TestStream_KeepAlive(t *testing.T) {
	hold := make(chan struct{})
	h := newHandler(processtest.New(processtest.Script{Hold: hold}), WithKeepAlive(5*time.Millisecond))

	go func() {
		time.Sleep(100 * time.Millisecond)
		close(hold)
	}()

	rec := post(h.HandleRollout, "/v1/rollout",
		`{"target":{"kubeconfig":"/tmp/kc","context":"staging","namespace":"web"},"deployment":"api"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	frames, comments := parseSSE(t, rec.Body.String())
	assert.Positive(t, comments, "expected keepalive comments while kubectl was quiet")
	assert.Equal(t, 0, resultFrame(t, frames).ExitCode)
}

func TestStream_ClientDisconnectStopsInvocation(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	h := newHandler(processtest.New(processtest.Script{Hold: hold}))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/v1/rollout",
		strings.NewReader(`{"target":{"kubeconfig":"/tmp/kc","context":"staging","namespace":"web"},"deployment":"api"}`)).
		WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.HandleRollout(rec, req)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after the client went away")
	}

	frames, _ := parseSSE(t, rec.Body.String())
	for _, f := range frames {
		assert.NotEqual(t, "result", f.Event)
	}
}

func TestHandlePreflight(t *testing.T) {
	path := writeKubeconfig(t)

	t.Run("passing", func(t *testing.T) {
		fake := processtest.New(processtest.Script{Stdout: []string{"ok"}})
		rec := post(newHandler(fake).HandlePreflight, "/v1/preflight",
			`{"target":{"kubeconfig":"`+path+`","context":"staging","namespace":"web"}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PreflightResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Report)
		assert.True(t, resp.Report.Passed)
		assert.Len(t, fake.Calls(), 3)

		var stdin int
		for _, e := range resp.Events {
			if e.WrittenTo == event.StreamStdin {
				stdin++
			}
		}
		assert.Equal(t, 3, stdin)
	})

	t.Run("failing check is still ok", func(t *testing.T) {
		fake := processtest.NewFunc(func(_ string, args []string) processtest.Script {
			if slices.Contains(args, "namespace") && slices.Contains(args, "get") {
				return processtest.Script{Stderr: []string{"Error from server (NotFound)"}, ExitCode: 1}
			}
			return processtest.Script{}
		})
		rec := post(newHandler(fake).HandlePreflight, "/v1/preflight",
			`{"target":{"kubeconfig":"`+path+`","context":"staging","namespace":"missing"}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PreflightResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Report.Passed)
		failed, ok := resp.Report.Failed()
		require.True(t, ok)
		assert.Equal(t, "namespace", string(failed.Check))
	})

	t.Run("launch failure", func(t *testing.T) {
		fake := processtest.New(processtest.Script{LaunchErr: os.ErrPermission})
		rec := post(newHandler(fake).HandlePreflight, "/v1/preflight",
			`{"target":{"kubeconfig":"`+path+`","context":"staging","namespace":"web"}}`)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "LAUNCH_FAILURE", decodeError(t, rec).Code)
	})

	t.Run("invalid target", func(t *testing.T) {
		fake := processtest.New(processtest.Script{})
		rec := post(newHandler(fake).HandlePreflight, "/v1/preflight", `{"target":{"kubeconfig":"`+path+`"}}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, fake.Calls())
	})
}

func TestHandleContexts(t *testing.T) {
	h := newHandler(processtest.New(processtest.Script{}))
	path := writeKubeconfig(t)

	rec := httptest.NewRecorder()
	h.HandleContexts(rec, httptest.NewRequest(http.MethodGet, "/v1/contexts?kubeconfig="+path, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ContextsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, path, resp.Kubeconfig)
	require.Len(t, resp.Contexts, 2)
	assert.Equal(t, "production", resp.Contexts[0].Name)
	assert.True(t, resp.Contexts[1].Current)

	rec = httptest.NewRecorder()
	h.HandleContexts(rec, httptest.NewRequest(http.MethodGet, "/v1/contexts?kubeconfig=/tmp/no-such-kubedrive-config", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesBehindServer(t *testing.T) {
	fake := processtest.New(processtest.Script{Stdout: []string{"configured"}})
	s := server.New(server.WithHandler(newHandler(fake).Routes()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, ts.URL+"/v1/apply", strings.NewReader(applyBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var body strings.Builder
	_, err = bufio.NewReader(resp.Body).WriteTo(&body)
	require.NoError(t, err)

	frames, _ := parseSSE(t, body.String())
	assert.Equal(t, 0, resultFrame(t, frames).ExitCode)
}
