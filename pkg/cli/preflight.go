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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/preflight"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
)

func (a *app) preflightCmd() *cli.Command {
	return &cli.Command{
		Name:                  "preflight",
		EnableShellCompletion: true,
		Usage:                 "Verify a cluster target before acting on it",
		Description: `Run the preflight checks against the target in order:
  - kubeconfig file is readable
  - kubectl is at least --min-client-version (when set)
  - the context exists in the kubeconfig
  - the cluster behind the context answers
  - the namespace exists
  - the deployment exists (when --deployment is set)

The first failing check skips the rest. The report can be written to a file
or stored in the target cluster as a ConfigMap (cm://namespace/name).`,
		Flags: []cli.Flag{
			deploymentFlag("Also require this deployment to exist"),
			&cli.StringFlag{
				Name:  "min-client-version",
				Usage: "Minimum kubectl client version (e.g., v1.28)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to a file or ConfigMap URI (cm://namespace/name) instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			t, err := targetFromCmd(cmd)
			if err != nil {
				return err
			}

			report, err := a.runPreflight(ctx, cmd, preflight.Request{
				Target:           t,
				Deployment:       cmd.String("deployment"),
				MinClientVersion: cmd.String("min-client-version"),
			})
			if err != nil {
				return err
			}

			var ser serializer.Serializer
			if out := cmd.String("output"); out != "" {
				ser = serializer.NewFileWriterOrStdout(outFormat, out, serializer.WithKubeconfig(t.Kubeconfig, t.Context))
			} else {
				ser = serializer.NewWriter(outFormat, cmd.Root().Writer)
			}
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to write preflight report: %w", err)
			}
			return preflightExit(report)
		},
	}
}

// runPreflight runs the checks with their kubectl traffic sent to the debug log.
func (a *app) runPreflight(ctx context.Context, cmd *cli.Command, req preflight.Request) (*preflight.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.PreflightTimeout)
	defer cancel()

	v := preflight.New(a.driver(cmd),
		preflight.WithSink(event.NewLogSink(slog.Default(), "phase", "preflight")),
	)
	report, err := v.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("preflight for %s could not complete: %w", req.Target, err)
	}
	return report, nil
}

// preflightExit returns an exit error naming the first failed check.
func preflightExit(report *preflight.Report) error {
	failed, ok := report.Failed()
	if !ok {
		return nil
	}
	msg := fmt.Sprintf("preflight check %q failed: %s", failed.Check, failed.Message)
	if len(report.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %v?)", report.Suggestions)
	}
	return cli.Exit(msg, 1)
}

// requireReady runs preflight before a mutating command. The deployment is
// not checked since the manifest may be what creates it.
func (a *app) requireReady(ctx context.Context, cmd *cli.Command, t kubectl.Target) error {
	report, err := a.runPreflight(ctx, cmd, preflight.Request{Target: t})
	if err != nil {
		return err
	}
	return preflightExit(report)
}
