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
	"log/slog"
	"os"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/logging"
	"github.com/NVIDIA/kubedrive/pkg/server"
)

const (
	name           = "kubedrived"
	versionDefault = "dev"

	// EnvKubectl overrides the kubectl binary the server runs.
	EnvKubectl = "KUBEDRIVE_KUBECTL"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/kubedrive/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	driver := kubectl.New(
		kubectl.WithBinary(os.Getenv(EnvKubectl)),
		kubectl.WithLogger(slog.Default()),
	)
	h := NewHandler(driver)

	err := server.Run(ctx,
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
		server.WithOnReady(func() { notify(daemon.SdNotifyReady) }),
		server.WithOnShutdown(func() { notify(daemon.SdNotifyStopping) }),
	)
	if err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// notify reports state to systemd. Outside a notify unit it is a no-op.
func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Warn("sd_notify failed", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("sd_notify sent", "state", state)
	}
}
