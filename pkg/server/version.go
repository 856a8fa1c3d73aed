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

package server

import (
	"net/http"
	"strings"
)

// DefaultAPIVersion is used when the client does not ask for one.
const DefaultAPIVersion = "v1"

// apiMediaTypePrefix starts a versioned media type such as
// application/vnd.nvidia.kubedrive.v1+json.
const apiMediaTypePrefix = "application/vnd.nvidia.kubedrive."

var supportedAPIVersions = map[string]bool{"v1": true}

// negotiateAPIVersion picks the API version from the Accept header.
func negotiateAPIVersion(r *http.Request) string {
	for _, mt := range strings.Split(r.Header.Get("Accept"), ",") {
		mt = strings.TrimSpace(mt)
		if i := strings.Index(mt, ";"); i >= 0 {
			mt = mt[:i]
		}
		rest, ok := strings.CutPrefix(mt, apiMediaTypePrefix)
		if !ok {
			continue
		}
		v, _, _ := strings.Cut(rest, "+")
		if supportedAPIVersions[v] {
			return v
		}
	}
	return DefaultAPIVersion
}

// SetAPIVersionHeader reports the served API version.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
