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

package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty          = errors.New("version string is empty")
	ErrTooManyParts   = errors.New("version has more than 3 components")
	ErrNotNumeric     = errors.New("version component is not numeric")
	ErrMissingVersion = errors.New("client version not present in kubectl output")
)

// Version is a Major.Minor.Patch triple. Precision records how many of the
// components were present in the parsed string.
type Version struct {
	Major     int    `json:"major" yaml:"major"`
	Minor     int    `json:"minor" yaml:"minor"`
	Patch     int    `json:"patch" yaml:"patch"`
	Precision int    `json:"precision" yaml:"precision"`
	Suffix    string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// New returns a full-precision version.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Precision: 3}
}

// String renders the version at its precision with a leading "v". The
// suffix is omitted.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return "v" + strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Parse accepts "1", "1.30", "v1.30.2", and suffixed forms such as
// "v1.30.2-eks-1552ad0" or "1.30.2+k3s1".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmpty
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	core := s
	if i := strings.IndexAny(s, "-+"); i > 0 {
		core, v.Suffix = s[:i], s[i:]
	}

	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyParts
	}

	nums := [3]int{}
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return Version{}, fmt.Errorf("%w: %q", ErrNotNumeric, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNotNumeric, p)
		}
		nums[i] = n
	}

	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	v.Precision = len(parts)
	return v, nil
}

// MustParse is Parse for literals. It panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("version.MustParse(%q): %v", s, err))
	}
	return v
}

// Compare returns -1, 0 or 1. Only the components present in both
// versions are compared, so v1.30 compares equal to v1.30.7.
func (v Version) Compare(other Version) int {
	precision := min(v.precision(), other.precision())

	a := [3]int{v.Major, v.Minor, v.Patch}
	b := [3]int{other.Major, other.Minor, other.Patch}
	for i := 0; i < precision; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v satisfies the minimum.
func (v Version) AtLeast(minimum Version) bool {
	return v.Compare(minimum) >= 0
}

func (v Version) precision() int {
	if v.Precision < 1 || v.Precision > 3 {
		return 3
	}
	return v.Precision
}

// ClientInfo is the subset of `kubectl version --client -o json` output
// used by the driver.
type ClientInfo struct {
	ClientVersion struct {
		Major      string `json:"major"`
		Minor      string `json:"minor"`
		GitVersion string `json:"gitVersion"`
		Platform   string `json:"platform"`
	} `json:"clientVersion"`
	KustomizeVersion string `json:"kustomizeVersion,omitempty"`
}

// ParseClient extracts the client version from kubectl's JSON output.
func ParseClient(data []byte) (Version, error) {
	var info ClientInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return Version{}, fmt.Errorf("failed to decode kubectl version output: %w", err)
	}

	if info.ClientVersion.GitVersion != "" {
		return Parse(info.ClientVersion.GitVersion)
	}
	if info.ClientVersion.Major == "" {
		return Version{}, ErrMissingVersion
	}
	// Minor is sometimes reported as "30+".
	return Parse(info.ClientVersion.Major + "." + strings.TrimSuffix(info.ClientVersion.Minor, "+"))
}
