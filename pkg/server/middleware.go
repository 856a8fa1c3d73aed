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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/google/uuid"
)

type middleware func(http.HandlerFunc) http.HandlerFunc

// withMiddleware wraps an API handler. The first middleware is outermost.
// Panics are recovered before the rate limiter so a crashing handler does
// not also cost the client a token.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	chain := []middleware{
		s.metricsMiddleware,
		s.versionMiddleware,
		s.requestIDMiddleware,
		s.panicRecoveryMiddleware,
		s.rateLimitMiddleware,
		s.bodyLimitMiddleware,
		s.loggingMiddleware,
	}
	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}
	return handler
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, v)
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeyAPIVersion, v)))
	}
}

// requestIDMiddleware keeps a caller-supplied UUID so a UI can correlate
// its own logs with ours; anything else is replaced.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		if err != nil {
			id = uuid.New()
		}
		w.Header().Set("X-Request-Id", id.String())
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id.String())))
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			h.Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		h.Set("X-RateLimit-Limit", strconv.Itoa(int(s.config.RateLimit)))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(int(s.rateLimiter.Tokens())))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
		next(w, r)
	}
}

// bodyLimitMiddleware caps request bodies; manifests are the largest.
func (s *Server) bodyLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limit := s.config.MaxRequestBytes; limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next(w, r)
	}
}

func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			panicRecoveries.Inc()
			slog.Error("handler panic",
				"panic", fmt.Sprint(rec),
				"requestID", RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
				"Internal server error", true, nil)
		}()
		next(w, r)
	}
}

// loggingMiddleware logs each request at debug. Event streams stay open
// for the whole invocation, so their duration is the kubectl run time.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := slog.With("requestID", RequestID(r.Context()), "method", r.Method, "path", r.URL.Path)
		log.Debug("request started")

		rw := newResponseWriter(w)
		next(rw, r)

		log.Debug("request completed",
			"status", rw.Status(),
			"contentType", rw.Header().Get("Content-Type"),
			"duration", time.Since(start).String(),
		)
	}
}
