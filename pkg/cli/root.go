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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/logging"
)

const (
	name           = "kubedrive"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// app carries dependencies shared by every command.
type app struct {
	driverOpts []kubectl.Option
}

// Execute runs the CLI with os.Args and exits the process on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	os.Exit(exitCode(err))
}

// exitCode reports err on stderr and returns the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(cli.ExitCoder); ok {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return ec.ExitCode()
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func newRootCmd(driverOpts ...kubectl.Option) *cli.Command {
	a := &app{driverOpts: driverOpts}

	root := &cli.Command{
		Name:                  name,
		Usage:                 "Drive kubectl deployments with live progress",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `kubedrive verifies a cluster target, applies manifests to it with kubectl
and watches rollouts, streaming every line kubectl writes as it arrives.`,
		Flags: []cli.Flag{
			kubeconfigFlag(),
			contextFlag(),
			namespaceFlag(),
			kubectlFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
				Value:   "info",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.preflightCmd(),
			a.applyCmd(),
			a.rolloutCmd(),
			a.contextsCmd(),
		},
	}

	// Exit codes are resolved by Execute, never inside Run.
	noExit := func(context.Context, *cli.Command, error) {}
	root.ExitErrHandler = noExit
	for _, c := range root.Commands {
		c.ExitErrHandler = noExit
	}
	return root
}

// driver builds a kubectl driver for the --kubectl binary.
func (a *app) driver(cmd *cli.Command) *kubectl.Driver {
	opts := []kubectl.Option{
		kubectl.WithBinary(cmd.String("kubectl")),
		kubectl.WithLogger(slog.Default()),
	}
	return kubectl.New(append(opts, a.driverOpts...)...)
}
