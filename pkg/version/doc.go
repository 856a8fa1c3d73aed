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

// Package version parses and compares kubectl and Kubernetes version strings.
//
// Kubernetes versions carry provider suffixes ("v1.30.2-eks-1552ad0",
// "v1.29.4-gke.1043002") and are sometimes given with reduced precision
// ("1.30"). A Version remembers how many components were given so that a
// minimum of "1.30" accepts every 1.30.x client.
//
// ParseClient reads the output of `kubectl version --client -o json`.
package version
