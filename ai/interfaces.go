package ai

import "context"

// Embedder generates vector embeddings from text for nearest-neighbour retrieval.
// Implementations must be deterministic for identical text and thread-safe for
// concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider owns an Embedder and the resources behind it.
// Vectors from different providers live in different spaces and must not be
// mixed within one index.
type Provider interface {
	// Name identifies the provider and model, e.g. "openai:embeddinggemma".
	// It is part of the embedding cache key.
	Name() string

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
