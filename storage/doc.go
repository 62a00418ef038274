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


// Package storage provides the persistence layer for ragsweep's embedding cache.
//
// Embedding every training row once per field combination is the dominant
// cost of an experiment, and the same concatenated text recurs across runs.
// VectorRepository stores vectors keyed by a content ID so a rerun only pays
// for text it has not seen before.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types:
//
//	repo, err := badger.NewVectorRepository(backend)  // returns storage.VectorRepository
//
// Internal helpers may return concrete types since they're only used within
// the implementation package.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/cache", badger.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewVectorRepository(backend)
//	embedder, err := ai.NewCachedEmbedder(provider.Embedder(), repo, provider.Name())
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryVectorRepository()
//
// # Serialization
//
// Values are encoded with mus-go serializers (see serialization.go).
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
