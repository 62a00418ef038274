package retrieval

import (
	"cmp"
	"slices"

	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/similarity"
)

// Record is one embedded training row.
type Record struct {
	Position int        // Index of the row in the training split
	Text     string     // Concatenated combination values that were embedded
	Vector   []float32
	Target   core.Value // Target field value carried for retrieval
}

// Match is a ranked retrieval hit.
type Match struct {
	Record     Record
	Similarity float64
	Rank       int // 1-based
}

// Index is the set of embedded training records for one combination.
// It is read-only after Build returns and safe for concurrent queries.
type Index struct {
	combination core.Combination
	records     []Record
	skipped     int
}

// Combination returns the combination the index was built for.
func (idx *Index) Combination() core.Combination {
	return idx.combination
}

// Len returns the number of embedded records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Skipped returns the number of rows dropped for missing fields.
func (idx *Index) Skipped() int {
	return idx.skipped
}

// Records returns a copy of the embedded records in insertion order.
func (idx *Index) Records() []Record {
	return slices.Clone(idx.records)
}

// Nearest returns the top-k records by cosine similarity to vector,
// highest first. Equal similarities keep insertion order.
func (idx *Index) Nearest(vector []float32, k int) ([]Match, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if idx == nil || len(idx.records) == 0 {
		return nil, ErrEmptyIndex
	}

	matches := make([]Match, len(idx.records))
	for i, rec := range idx.records {
		matches[i] = Match{Record: rec, Similarity: similarity.Cosine(vector, rec.Vector)}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	for i := range matches {
		matches[i].Rank = i + 1
	}
	return matches, nil
}
