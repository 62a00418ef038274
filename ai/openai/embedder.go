package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/ragsweep/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder over an OpenAI-compatible /embeddings
// endpoint. Every vector it returns has the dimensionality of the first
// vector it received; retrieval compares vectors from one instance only.
type Embedder struct {
	embedder embeddings.Embedder
	model    string
	dims     atomic.Int64
	logger   *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIToken),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	// Concatenated records keep their field separators; newlines carry no
	// meaning for the model.
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &Embedder{
		embedder: embedder,
		model:    config.EmbeddingModel,
		logger:   slog.Default().With("component", "openai-embedder", "model", config.EmbeddingModel),
	}, nil
}

// NewEmbedder creates an embedder for config without a Provider around it.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Dimensions reports the vector length seen so far, or 0 before the first call.
func (e *Embedder) Dimensions() int {
	return int(e.dims.Load())
}

// EmbedText embeds a single query or record text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch of texts in one request, preserving order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	e.logger.Debug("embedding batch", "texts", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Warn("embedding request failed", "texts", len(texts), "err", err)
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ai.ErrEmbeddingCountMismatch, len(vectors), len(texts))
	}
	if err := e.checkDimensions(vectors); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (e *Embedder) checkDimensions(vectors [][]float32) error {
	for i, v := range vectors {
		n := int64(len(v))
		if n == 0 {
			return fmt.Errorf("%w: empty vector at %d", ai.ErrDimensionMismatch, i)
		}
		if e.dims.CompareAndSwap(0, n) {
			continue
		}
		if want := e.dims.Load(); n != want {
			return fmt.Errorf("%w: got %d, want %d", ai.ErrDimensionMismatch, n, want)
		}
	}
	return nil
}
