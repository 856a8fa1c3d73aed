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

package serializer

import "context"

// Serializer writes one document to its destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is implemented by serializers holding resources such as files.
type Closer interface {
	Close() error
}

// Tabular is implemented by values with a natural column layout.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}
