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
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"golang.org/x/time/rate"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server, keyed by path
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Request limits
	MaxRequestBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a Config populated from defaults and the environment.
func NewConfig() *Config {
	cfg := &Config{
		Name:              "kubedrived",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         defaults.RateLimit,
		RateLimitBurst:    defaults.RateLimitBurst,
		MaxRequestBytes:   defaults.MaxRequestBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil && port > 0 && port < 65536 {
			cfg.Port = port
		}
	}

	// Match the Kubernetes termination grace period when set.
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
