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
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/NVIDIA/kubedrive/pkg/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server is the kubedrive HTTP server.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter

	onReady    []func()
	onShutdown []func()

	mu    sync.RWMutex
	ready bool
}

// New builds a Server from NewConfig and opts.
func New(opts ...Option) *Server {
	s := &Server{config: NewConfig()}
	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	s.httpServer = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports readiness.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	s.SetReady(true)
	slog.Info("server listening", "address", ln.Addr().String())
	for _, fn := range s.onReady {
		fn()
	}

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.SetReady(false)
		if !ok {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting requests and waits up to ShutdownTimeout for
// in-flight ones. Open event streams see their request context canceled,
// which stops their kubectl invocations.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)
	for _, fn := range s.onShutdown {
		fn()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		// streams still open after the grace period are cut off
		_ = s.httpServer.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Run builds a server from opts and serves until SIGINT or SIGTERM.
func Run(ctx context.Context, opts ...Option) error {
	s := New(opts...)

	slog.Info("starting server",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", s.httpServer.Addr,
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"maxRequestBytes", s.config.MaxRequestBytes,
		"readTimeout", s.config.ReadTimeout,
		"idleTimeout", s.config.IdleTimeout,
		"shutdownTimeout", s.config.ShutdownTimeout,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
