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
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubeconfig"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/preflight"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
	"github.com/NVIDIA/kubedrive/pkg/server"
	"gopkg.in/yaml.v3"
)

// Handler serves the kubectl driver over HTTP.
type Handler struct {
	driver    *kubectl.Driver
	logger    *slog.Logger
	keepAlive time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithKeepAlive sets the interval between keepalive comments on event streams.
func WithKeepAlive(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.keepAlive = d
		}
	}
}

// NewHandler returns a Handler running commands through d.
func NewHandler(d *kubectl.Driver, opts ...HandlerOption) *Handler {
	h := &Handler{
		driver:    d,
		logger:    slog.Default(),
		keepAlive: defaults.KeepAliveInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the handlers keyed by path, ready for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/apply":     h.HandleApply,
		"/v1/rollout":   h.HandleRollout,
		"/v1/preflight": h.HandlePreflight,
		"/v1/contexts":  h.HandleContexts,
	}
}

// HandleApply handles POST /v1/apply.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req ApplyRequest
	if err := decode(r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}
	if strings.TrimSpace(req.Manifest) == "" {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"manifest is required", false, nil)
		return
	}

	h.stream(w, r, func(ctx context.Context, sink event.Sink) (*kubectl.Invocation, error) {
		return h.driver.StartApply(ctx, req.Target, kubectl.Manifest(req.Manifest), sink)
	})
}

// HandleRollout handles POST /v1/rollout.
func (h *Handler) HandleRollout(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req RolloutRequest
	if err := decode(r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	ref := kubectl.DeploymentRef{Target: req.Target, Name: req.Deployment}
	h.stream(w, r, func(ctx context.Context, sink event.Sink) (*kubectl.Invocation, error) {
		return h.driver.StartRolloutStatus(ctx, ref, sink)
	})
}

// HandlePreflight handles POST /v1/preflight. A report with failed checks
// is still a 200; only checks that could not run produce an error status.
func (h *Handler) HandlePreflight(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req preflight.Request
	if err := decode(r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.PreflightTimeout)
	defer cancel()

	rec := event.NewRecorder()
	v := preflight.New(h.driver,
		preflight.WithSink(rec),
		preflight.WithLogger(h.logger.With("requestID", server.RequestID(r.Context()))),
	)

	report, err := v.Run(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = errors.Wrap(errors.ErrCodeTimeout, "preflight timed out", err)
		}
		server.WriteErrorFromErr(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, PreflightResponse{
		Report: report,
		Events: rec.Events(),
	})
}

// HandleContexts handles GET /v1/contexts?kubeconfig=path.
func (h *Handler) HandleContexts(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	path := kubeconfig.ResolvePath(r.URL.Query().Get("kubeconfig"))
	if !kubeconfig.Readable(path) {
		server.WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"kubeconfig not found", false, map[string]any{"kubeconfig": path})
		return
	}

	ctxs, err := kubeconfig.Contexts(path)
	if err != nil {
		server.WriteErrorFromErr(w, r, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to parse kubeconfig", err, map[string]any{"kubeconfig": path}))
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ContextsResponse{Kubeconfig: path, Contexts: ctxs})
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method, "allowed": method})
	return false
}

// decode reads a JSON body, or YAML when the content type says so.
func decode(r *http.Request, v any) error {
	var err error
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		err = yaml.NewDecoder(r.Body).Decode(v)
	} else {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid request body", err)
	}
	return nil
}
