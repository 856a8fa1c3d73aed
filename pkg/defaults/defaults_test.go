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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 60 * time.Second},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, 1 * time.Second, 15 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},
		{"StreamWriteTimeout", StreamWriteTimeout, 5 * time.Second, 60 * time.Second},
		{"JSONHandlerTimeout", JSONHandlerTimeout, 30 * time.Second, 5 * time.Minute},

		// Streaming
		{"KeepAliveInterval", KeepAliveInterval, 5 * time.Second, 60 * time.Second},
		{"OutputDrainGrace", OutputDrainGrace, 100 * time.Millisecond, 10 * time.Second},

		// CLI
		{"PreflightTimeout", PreflightTimeout, 30 * time.Second, 5 * time.Minute},
		{"RolloutTimeout", RolloutTimeout, 1 * time.Minute, 30 * time.Minute},

		// Kubernetes API
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 5 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	if ServerReadHeaderTimeout > ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should not exceed ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}

	if ServerIdleTimeout < ServerReadTimeout {
		t.Errorf("ServerIdleTimeout (%v) should be at least ServerReadTimeout (%v)",
			ServerIdleTimeout, ServerReadTimeout)
	}
}

func TestKeepAliveShorterThanWriteTimeout(t *testing.T) {
	// a stalled client must be detected before the next keepalive is due
	if KeepAliveInterval >= StreamWriteTimeout {
		t.Errorf("KeepAliveInterval (%v) should be less than StreamWriteTimeout (%v)",
			KeepAliveInterval, StreamWriteTimeout)
	}
}

func TestLimits(t *testing.T) {
	if RelayBufferSize < 4<<10 {
		t.Errorf("RelayBufferSize (%d) is too small", RelayBufferSize)
	}
	if MaxRequestBytes < 1<<20 {
		t.Errorf("MaxRequestBytes (%d) is too small for real manifests", MaxRequestBytes)
	}
	if RateLimitBurst < RateLimit {
		t.Errorf("RateLimitBurst (%d) should be at least RateLimit (%d)", RateLimitBurst, RateLimit)
	}
	if KubectlBinary == "" {
		t.Error("KubectlBinary must not be empty")
	}
}
