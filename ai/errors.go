package ai

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbedderRequired is returned when a nil embedder is supplied.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrCacheRequired is returned when a nil vector cache is supplied.
	ErrCacheRequired = errors.New("vector cache required")

	// ErrEmbeddingCountMismatch is returned when a batch call returns the wrong number of vectors.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrDimensionMismatch is returned when a provider instance produces
	// vectors of differing lengths.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
