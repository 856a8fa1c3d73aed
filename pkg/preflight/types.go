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

package preflight

import (
	"time"

	"github.com/NVIDIA/kubedrive/pkg/kubectl"
)

// Check names one preflight check.
type Check string

const (
	CheckConfigName     Check = "config"
	CheckClientName     Check = "client"
	CheckContextName    Check = "context"
	CheckClusterName    Check = "cluster"
	CheckNamespaceName  Check = "namespace"
	CheckDeploymentName Check = "deployment"
)

// Request selects what Run verifies. Deployment and MinClientVersion are
// optional; their checks are skipped when empty.
type Request struct {
	Target           kubectl.Target `json:"target" yaml:"target"`
	Deployment       string         `json:"deployment,omitempty" yaml:"deployment,omitempty"`
	MinClientVersion string         `json:"minClientVersion,omitempty" yaml:"minClientVersion,omitempty"`
}

// Result is the outcome of one check.
type Result struct {
	Check    Check         `json:"check" yaml:"check"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Skipped  bool          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
}

// Report is the outcome of Run.
type Report struct {
	Passed      bool     `json:"passed" yaml:"passed"`
	Results     []Result `json:"results" yaml:"results"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Failed returns the first failed check, if any.
func (r *Report) Failed() (Result, bool) {
	for _, res := range r.Results {
		if !res.Passed && !res.Skipped {
			return res, true
		}
	}
	return Result{}, false
}

// TableHeader implements serializer.Tabular.
func (r *Report) TableHeader() []string {
	return []string{"CHECK", "STATUS", "DURATION", "MESSAGE"}
}

// TableRows implements serializer.Tabular. Suggestions follow the checks.
func (r *Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Results)+len(r.Suggestions))
	for _, res := range r.Results {
		rows = append(rows, []string{string(res.Check), res.Status(), res.Duration.Round(time.Millisecond).String(), res.Message})
	}
	for _, s := range r.Suggestions {
		rows = append(rows, []string{"", "", "", "did you mean " + s + "?"})
	}
	return rows
}

// Status is passed, failed or skipped.
func (r Result) Status() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Passed:
		return "passed"
	default:
		return "failed"
	}
}
