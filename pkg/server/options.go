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

import "net/http"

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported by the root route.
func WithName(name string) Option {
	return func(s *Server) { s.config.Name = name }
}

// WithVersion sets the server version.
func WithVersion(version string) Option {
	return func(s *Server) { s.config.Version = version }
}

// WithHandler registers handlers by path. Each runs behind the middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithConfig replaces the configuration. Options applied after it still
// take effect.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithOnReady registers fn to run once the server is listening.
func WithOnReady(fn func()) Option {
	return func(s *Server) { s.onReady = append(s.onReady, fn) }
}

// WithOnShutdown registers fn to run when graceful shutdown begins.
func WithOnShutdown(fn func()) Option {
	return func(s *Server) { s.onShutdown = append(s.onShutdown, fn) }
}
