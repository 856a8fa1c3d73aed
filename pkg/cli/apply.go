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

	"github.com/urfave/cli/v3"
)

func (a *app) applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply a manifest and stream kubectl output",
		Description: `Apply a rendered manifest to the target through kubectl standard input.

Preflight runs first unless --skip-preflight is set. With --deployment the
command keeps going after a successful apply and watches that rollout until
it finishes, fails or --timeout passes.

  kubedrive apply -f app.yaml --context prod -n web --deployment api
  helm template ./chart | kubedrive apply -f - --context prod -n web`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "filename",
				Aliases:  []string{"f"},
				Usage:    "Manifest file, or - for stdin",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "skip-preflight",
				Usage: "Apply without verifying the target first",
			},
			deploymentFlag("Watch this deployment's rollout after a successful apply"),
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

			manifest, err := readManifest(cmd.String("filename"), cmd.Root().Reader)
			if err != nil {
				return err
			}

			if !cmd.Bool("skip-preflight") {
				if err := a.requireReady(ctx, cmd, t); err != nil {
					return err
				}
			}

			d := a.driver(cmd)
			code, err := d.Apply(ctx, t, manifest, out)
			if err != nil {
				return fmt.Errorf("apply to %s failed: %w", t, err)
			}
			if err := out.Err(); err != nil {
				return fmt.Errorf("failed to write progress: %w", err)
			}
			if err := kubectlExit("apply", code); err != nil {
				return err
			}

			if name := cmd.String("deployment"); name != "" {
				return a.watchRollout(ctx, cmd, t, name, out)
			}
			return nil
		},
	}
}
