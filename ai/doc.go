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


// Package ai provides the embedding abstractions used by ragsweep.
//
// Retrieval and experiment code depend on the Embedder interface rather than
// on a concrete service, so an experiment can be pointed at a hosted model, a
// local OpenAI-compatible server or the offline hashing embedder without
// touching evaluation logic.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - Provider: Owns an Embedder and the resources behind it
//   - VectorCache: Stores vectors keyed by content so identical strings are embedded once
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible APIs through langchaingo
//   - ai/hashing: Deterministic feature-hashing vectors, no network
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors return interface types. Test utility constructors
// (mock.NewMockEmbedder) return concrete types so tests can inject behaviour
// and inspect call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithEmbeddingModel("text-embedding-3-small"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	embedder, err := ai.NewCachedEmbedder(provider.Embedder(), cache, provider.Name())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vectors, err := embedder.EmbedTexts(ctx, []string{"first", "second"})
//
// RetryWithBackoff wraps transient provider failures with capped exponential
// backoff; wrap an error with Permanent to stop retrying.
package ai
