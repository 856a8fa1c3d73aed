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

	"github.com/NVIDIA/kubedrive/pkg/kubeconfig"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
)

func (a *app) contextsCmd() *cli.Command {
	return &cli.Command{
		Name:  "contexts",
		Usage: "List the contexts in the kubeconfig",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			path := kubeconfig.ResolvePath(cmd.String("kubeconfig"))
			ctxs, err := kubeconfig.Contexts(path)
			if err != nil {
				return err
			}
			if len(ctxs) == 0 {
				return fmt.Errorf("no contexts found in %s", path)
			}

			return serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(ctx, ctxs)
		},
	}
}
