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


package openai

import (
	"log/slog"

	"github.com/poiesic/ragsweep/ai"
)

// Provider implements ai.Provider for OpenAI-compatible services: OpenAI
// itself, Ollama, LocalAI or vLLM.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	logger   *slog.Logger
}

// NewProvider validates and normalizes config, then builds the embedder.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-provider", "host", config.EmbeddingHost),
	}, nil
}

// Name returns "openai:" followed by the embedding model. Cached vectors
// are namespaced by it.
func (p *Provider) Name() string {
	return p.config.CacheNamespace()
}

// Embedder returns the provider's embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close logs the observed vector size. The HTTP client needs no cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing provider", "model", p.embedder.model, "dimensions", p.embedder.Dimensions())
	return nil
}
