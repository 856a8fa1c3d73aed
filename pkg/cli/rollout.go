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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/process"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
)

func (a *app) rolloutCmd() *cli.Command {
	return &cli.Command{
		Name:                  "rollout",
		EnableShellCompletion: true,
		Usage:                 "Watch a deployment rollout until it finishes",
		Description: `Run kubectl rollout status for the deployment and stream its output.

kubectl decides when the rollout succeeded or failed; its exit code becomes
the exit code of this command. --timeout stops watching and kills kubectl.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "deployment",
				Aliases:  []string{"d"},
				Usage:    "Deployment name",
				Required: true,
			},
			timeoutFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out, err := eventWriter(cmd)
			if err != nil {
				return err
			}

			t, err := targetFromCmd(cmd)
			if err != nil {
				return err
			}

			return a.watchRollout(ctx, cmd, t, cmd.String("deployment"), out)
		},
	}
}

// watchRollout runs rollout status bounded by --timeout.
func (a *app) watchRollout(ctx context.Context, cmd *cli.Command, t kubectl.Target, name string, out *serializer.EventWriter) error {
	timeout := cmd.Duration("timeout")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	code, err := a.driver(cmd).RolloutStatus(ctx, t, name, out)
	if err != nil {
		if process.IsCanceled(err) && ctx.Err() == context.DeadlineExceeded {
			return cli.Exit(fmt.Sprintf("rollout of %s/%s did not finish within %s", t, name, timeout.Round(time.Second)), 1)
		}
		return fmt.Errorf("rollout status for %s/%s failed: %w", t, name, err)
	}
	if err := out.Err(); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return kubectlExit("rollout status", code)
}
