package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/ragsweep/ai"
)

// Matcher answers queries against an Index.
// The embedder must be the one the Index was built with; vector spaces are
// not checked here.
type Matcher struct {
	embedder ai.Embedder
	settings settings
	logger   *slog.Logger
}

// NewMatcher creates a Matcher around embedder.
func NewMatcher(embedder ai.Embedder, opts ...Option) (*Matcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Matcher{
		embedder: embedder,
		settings: s,
		logger:   s.logger.With("component", "matcher"),
	}, nil
}

// Query embeds text and returns the k most similar records of idx.
func (m *Matcher) Query(ctx context.Context, text string, idx *Index, k int) ([]Match, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if idx == nil || idx.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	vectors, err := embedBatch(ctx, m.embedder, []string{text}, m.settings)
	if err != nil {
		m.logger.Debug("query embedding failed", "err", err)
		return nil, err
	}
	return idx.Nearest(vectors[0], k)
}
