package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/storage"
)

// maxBatchWrites bounds the entries written in one transaction.
const maxBatchWrites = 1000

// VectorRepository implements storage.VectorRepository for BadgerDB.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository on an open backend.
func NewVectorRepository(backend *Backend) (storage.VectorRepository, error) {
	if backend == nil {
		return nil, errors.New("badger backend required")
	}
	return &VectorRepository{backend: backend}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *VectorRepository) Close() error {
	return nil
}

// GetVectors returns the stored vectors for the keys that are present.
func (r *VectorRepository) GetVectors(ctx context.Context, keys []core.ID) (map[core.ID][]float32, error) {
	out := make(map[core.ID][]float32, len(keys))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			vector, err := readVector(tx, makeVectorKey(id))
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out[id] = vector
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetVector returns a single stored vector or storage.ErrNotFound.
func (r *VectorRepository) GetVector(ctx context.Context, key core.ID) ([]float32, error) {
	var vector []float32
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		vector, err = readVector(tx, makeVectorKey(key))
		return err
	}, false)
	return vector, err
}

// PutVectors stores vectors, committing every maxBatchWrites entries.
func (r *VectorRepository) PutVectors(ctx context.Context, entries map[core.ID][]float32) error {
	ids := make([]core.ID, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}

	for start := 0; start < len(ids); start += maxBatchWrites {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+maxBatchWrites, len(ids))
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, id := range ids[start:end] {
				if err := tx.Set(makeVectorKey(id), storage.MarshalVector(entries[id])); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored vectors.
func (r *VectorRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(vectorRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if _, ok := parseVectorKey(iter.Item().Key()); ok {
				count++
			}
		}
		return ctx.Err()
	}, false)
	return count, err
}

// Purge deletes every stored vector and reclaims the value log space.
func (r *VectorRepository) Purge(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.backend.DropPrefix([]byte(vectorRecordPrefix)); err != nil {
		return err
	}
	_, err := r.backend.Compact()
	return err
}

func readVector(tx *badger.Txn, key []byte) ([]float32, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var vector []float32
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		vector, unmarshalErr = storage.UnmarshalVector(val)
		return unmarshalErr
	})
	return vector, err
}
