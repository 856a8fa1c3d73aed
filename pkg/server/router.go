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

package server

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes registers system endpoints and the configured handlers.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	for path, h := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(h))
	}

	return mux
}

func (s *Server) routes() []string {
	routes := []string{"GET /health", "GET /ready", "GET /metrics"}
	for path := range s.config.Handlers {
		routes = append(routes, path)
	}
	sort.Strings(routes)
	return routes
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	slog.Debug("handling default route",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	serializer.RespondJSON(w, http.StatusOK, struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.IsReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
