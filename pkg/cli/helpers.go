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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/kubeconfig"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
)

// kubeconfigFlag and the other flag constructors return a fresh flag per
// command tree since urfave flags keep their parsed value.
func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to the kubeconfig file; for a list only the first entry is used (default ~/.kube/config)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func contextFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "context",
		Usage:   "Kubeconfig context (default: the current context)",
		Sources: cli.EnvVars("KUBEDRIVE_CONTEXT"),
	}
}

func namespaceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Usage:   "Target namespace (default: the context namespace, then \"default\")",
		Sources: cli.EnvVars("KUBEDRIVE_NAMESPACE"),
	}
}

func kubectlFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubectl",
		Usage:   "kubectl binary to run",
		Sources: cli.EnvVars("KUBEDRIVE_KUBECTL"),
		Value:   defaults.KubectlBinary,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatTable),
	}
}

func deploymentFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "deployment",
		Aliases: []string{"d"},
		Usage:   usage,
	}
}

func timeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "How long to watch the rollout before giving up",
		Value: defaults.RolloutTimeout,
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// targetFromCmd resolves the target from flags. Context and namespace fall
// back to the kubeconfig's current context, and the namespace finally to
// "default", the same way kubectl resolves them.
func targetFromCmd(cmd *cli.Command) (kubectl.Target, error) {
	t := kubectl.Target{
		Kubeconfig: kubeconfig.ResolvePath(cmd.String("kubeconfig")),
		Context:    cmd.String("context"),
		Namespace:  cmd.String("namespace"),
	}

	if t.Context == "" || t.Namespace == "" {
		if ctxs, err := kubeconfig.Contexts(t.Kubeconfig); err == nil {
			for _, c := range ctxs {
				if (t.Context == "" && c.Current) || (t.Context != "" && c.Name == t.Context) {
					if t.Context == "" {
						t.Context = c.Name
					}
					if t.Namespace == "" {
						t.Namespace = c.Namespace
					}
					break
				}
			}
		}
	}
	if t.Namespace == "" {
		t.Namespace = metav1.NamespaceDefault
	}

	return t, t.Validate()
}

// readManifest reads the manifest from path, or from stdin when path is "-".
func readManifest(path string, stdin io.Reader) (kubectl.Manifest, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return "", fmt.Errorf("a manifest is required, use --filename or - for stdin")
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("manifest %s is empty", path)
	}
	return kubectl.Manifest(data), nil
}

// eventWriter prints progress events to the command's stdout.
func eventWriter(cmd *cli.Command) (*serializer.EventWriter, error) {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}
	return serializer.NewEventWriter(f, cmd.Root().Writer), nil
}

// kubectlExit turns a kubectl exit code into a command result.
func kubectlExit(op string, code int) error {
	if code == 0 {
		return nil
	}
	return cli.Exit(fmt.Sprintf("kubectl %s exited with code %d", op, code), code)
}
