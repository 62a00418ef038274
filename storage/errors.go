// Copyright 2025 Poiesic Systems
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


package storage

import "errors"

var (
	// ErrNotFound is returned when no vector is cached under a key.
	ErrNotFound = errors.New("vector not cached")

	// ErrStorageClosed is returned by operations on a closed cache backend.
	ErrStorageClosed = errors.New("vector cache is closed")

	// ErrSerializationFailed wraps mus decoding failures of cached entries.
	ErrSerializationFailed = errors.New("cache entry decoding failed")

	// ErrTruncatedData is returned when a cached vector is shorter than its
	// encoded length.
	ErrTruncatedData = errors.New("truncated cache entry")
)
