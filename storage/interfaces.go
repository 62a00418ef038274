package storage

import (
	"context"

	"github.com/poiesic/ragsweep/core"
)

// VectorRepository persists embedding vectors keyed by content ID.
// It satisfies ai.VectorCache.
// Implementations must be thread-safe and support concurrent access.
type VectorRepository interface {
	// GetVectors returns the stored vectors for the keys that are present.
	// Absent keys are omitted from the result.
	GetVectors(ctx context.Context, keys []core.ID) (map[core.ID][]float32, error)

	// PutVectors stores vectors, replacing existing entries.
	PutVectors(ctx context.Context, entries map[core.ID][]float32) error

	// GetVector returns a single vector or ErrNotFound.
	GetVector(ctx context.Context, key core.ID) ([]float32, error)

	// Count returns the number of stored vectors.
	Count(ctx context.Context) (int, error)

	// Purge deletes every stored vector.
	Purge(ctx context.Context) error

	// Close releases repository resources. It does not close the backend.
	Close() error
}
