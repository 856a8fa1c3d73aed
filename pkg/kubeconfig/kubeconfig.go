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

package kubeconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// DefaultPath is the kubeconfig location used when none is given, relative
// to the home directory.
const DefaultPath = ".kube/config"

// ResolvePath returns the absolute location of path. A KUBECONFIG-style list
// resolves to its first non-empty entry. Absolute paths are returned
// cleaned, "~" and "~/..." expand to the home directory, and any other
// relative path is joined onto the home directory. An empty path resolves
// to DefaultPath.
func ResolvePath(path string) string {
	path = firstEntry(path)
	if path == "" {
		path = DefaultPath
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	home := homedir.HomeDir()
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return filepath.Join(home, path)
	}
}

func firstEntry(list string) string {
	for _, p := range filepath.SplitList(list) {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return ""
}

// Readable reports whether the kubeconfig at path exists as a regular file
// and can be opened for reading. It never returns an error.
func Readable(path string) bool {
	f, err := os.Open(ResolvePath(path))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Context describes one kubeconfig context.
type Context struct {
	Name      string `json:"name" yaml:"name"`
	Cluster   string `json:"cluster" yaml:"cluster"`
	AuthInfo  string `json:"user" yaml:"user"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Current   bool   `json:"current" yaml:"current"`
}

// ContextList renders as a table with the current context marked.
type ContextList []Context

func (l ContextList) TableHeader() []string {
	return []string{"CURRENT", "NAME", "CLUSTER", "USER", "NAMESPACE"}
}

func (l ContextList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		current := ""
		if c.Current {
			current = "*"
		}
		rows = append(rows, []string{current, c.Name, c.Cluster, c.AuthInfo, c.Namespace})
	}
	return rows
}

// Contexts loads the kubeconfig at path and returns its contexts sorted by name.
func Contexts(path string) (ContextList, error) {
	resolved := ResolvePath(path)
	cfg, err := clientcmd.LoadFromFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig from %s: %w", resolved, err)
	}

	out := make([]Context, 0, len(cfg.Contexts))
	for name, c := range cfg.Contexts {
		if c == nil {
			continue
		}
		out = append(out, Context{
			Name:      name,
			Cluster:   c.Cluster,
			AuthInfo:  c.AuthInfo,
			Namespace: c.Namespace,
			Current:   name == cfg.CurrentContext,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ContextNames returns the sorted context names in the kubeconfig at path.
func ContextNames(path string) ([]string, error) {
	ctxs, err := Contexts(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ctxs))
	for _, c := range ctxs {
		names = append(names, c.Name)
	}
	return names, nil
}

// Suggest returns up to limit candidates close to name, nearest first.
// A candidate qualifies when its edit distance is at most a third of the
// longer string's length (and never less than 2). Case is ignored.
func Suggest(name string, candidates []string, limit int) []string {
	if name == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		name     string
		distance int
	}

	lower := strings.ToLower(name)
	var matches []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		threshold := max(len(name), len(c)) / 3
		if threshold < 2 {
			threshold = 2
		}
		if d <= threshold {
			matches = append(matches, scored{name: c, distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}
