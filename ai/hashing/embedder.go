// Package hashing provides a deterministic, offline ai.Provider.
//
// Text is tokenized, unigrams and adjacent bigrams are hashed into a fixed
// number of signed buckets and the result is scaled to unit length. Vectors
// carry lexical overlap only, which makes the provider useful for dry runs
// and for checking a pipeline before paying for a hosted model.
package hashing

import (
	"context"
	"hash/fnv"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/similarity"
)

// Embedder hashes token features into a fixed-width vector.
type Embedder struct {
	dim int
}

// NewEmbedder creates a hashing embedder producing vectors of length dim.
func NewEmbedder(dim int) (*Embedder, error) {
	cfg := ai.NewConfig(ai.WithProvider(ai.ProviderHashing), ai.WithDimensions(dim))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Embedder{dim: dim}, nil
}

// Dimensions returns the vector length.
func (e *Embedder) Dimensions() int {
	return e.dim
}

// EmbedText returns the hashed feature vector of text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.vector(text), nil
}

// EmbedTexts returns the hashed feature vectors of texts in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *Embedder) vector(text string) []float32 {
	v := make([]float32, e.dim)
	tokens := similarity.Tokenize(text)
	for i, tok := range tokens {
		e.add(v, tok, 1)
		if i > 0 {
			e.add(v, tokens[i-1]+" "+tok, 0.5)
		}
	}
	return similarity.NormalizeVector(v)
}

func (e *Embedder) add(v []float32, feature string, weight float32) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()
	bucket := int(sum % uint64(e.dim))
	// top bit picks the sign so collisions tend to cancel
	if sum>>63 == 1 {
		weight = -weight
	}
	v[bucket] += weight
}
