package retrieval

import "errors"

var (
	// ErrEmbedderRequired is returned when a nil embedder is supplied.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmptyIndex is returned when no row survives the row-level skip.
	ErrEmptyIndex = errors.New("empty index")

	// ErrProviderFailure wraps errors returned by the embedding provider.
	ErrProviderFailure = errors.New("embedding provider failure")

	// ErrInvalidK is returned when fewer than one match is requested.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrInvalidBatchSize is returned when the embedding batch size is less than 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
)
