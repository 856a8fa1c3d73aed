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

package kubectl

import (
	"strconv"
	"strings"
)

// Operation labels an invocation in logs and metrics.
type Operation string

const (
	OpApply           Operation = "apply"
	OpRolloutStatus   Operation = "rollout-status"
	OpCheckContext    Operation = "check-context"
	OpCheckCluster    Operation = "check-cluster"
	OpCheckNamespace  Operation = "check-namespace"
	OpCheckDeployment Operation = "check-deployment"
	OpClientVersion   Operation = "client-version"
)

// Command is one kubectl invocation: its arguments and what to feed stdin.
// An empty Input closes stdin right after launch.
type Command struct {
	Operation Operation
	Args      []string
	Input     Manifest
}

// Display renders the command line for the stdin event. Input is shown only
// as a redirect from ManifestPlaceholder.
func (c Command) Display(binary string) string {
	var b strings.Builder
	b.WriteString(quoteArg(binary))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(quoteArg(a))
	}
	if c.Input != "" {
		b.WriteString(" < ")
		b.WriteString(ManifestPlaceholder)
	}
	return b.String()
}

func quoteArg(a string) string {
	if a == "" || strings.ContainsAny(a, " \t\n\"'\\") {
		return strconv.Quote(a)
	}
	return a
}
