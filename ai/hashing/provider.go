package hashing

import (
	"github.com/poiesic/ragsweep/ai"
)

// Provider implements ai.Provider with a hashing Embedder.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
}

// NewProvider creates a hashing provider from config. Only Dimensions is used.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	embedder, err := NewEmbedder(config.Dimensions)
	if err != nil {
		return nil, err
	}
	return &Provider{config: config, embedder: embedder}, nil
}

// Name returns "hashing:" followed by the vector length.
func (p *Provider) Name() string {
	return p.config.CacheNamespace()
}

// Embedder returns the hashing embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
