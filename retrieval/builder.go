package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/core"
)

// RecordSeparator joins combination field values into the embedded text.
const RecordSeparator = " | "

// Builder embeds training rows into an Index.
type Builder struct {
	embedder ai.Embedder
	settings settings
	logger   *slog.Logger
}

// NewBuilder creates a Builder around embedder.
func NewBuilder(embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Builder{
		embedder: embedder,
		settings: s,
		logger:   s.logger.With("component", "index-builder"),
	}, nil
}

// ConcatFields joins the row's values for fields in order.
// Returns false if any field is missing from the row.
func ConcatFields(row core.Row, fields []string) (string, bool) {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v, ok := row.Lookup(f)
		if !ok {
			return "", false
		}
		parts[i] = v.String()
	}
	return strings.Join(parts, RecordSeparator), true
}

// Build embeds every usable row for combo. Rows lacking a combination field
// or targetField are skipped with a warning. Returns ErrEmptyIndex when no
// row survives, and wraps provider errors in ErrProviderFailure.
func (b *Builder) Build(ctx context.Context, rows []core.Row, combo core.Combination, targetField string) (*Index, error) {
	idx := &Index{combination: combo}

	var texts []string
	for pos, row := range rows {
		target, ok := row.Lookup(targetField)
		if !ok {
			b.logger.Warn("skipping training row without target field", "combination", combo.Name, "row", pos, "field", targetField)
			idx.skipped++
			continue
		}
		text, ok := ConcatFields(row, combo.Fields)
		if !ok {
			b.logger.Warn("skipping training row with missing field", "combination", combo.Name, "row", pos)
			idx.skipped++
			continue
		}
		idx.records = append(idx.records, Record{Position: pos, Text: text, Target: target})
		texts = append(texts, text)
	}

	if len(idx.records) == 0 {
		return nil, fmt.Errorf("%w: combination %q: all %d rows skipped", ErrEmptyIndex, combo.Name, idx.skipped)
	}

	for start := 0; start < len(texts); start += b.settings.batchSize {
		end := min(start+b.settings.batchSize, len(texts))
		vectors, err := embedBatch(ctx, b.embedder, texts[start:end], b.settings)
		if err != nil {
			return nil, err
		}
		for i, v := range vectors {
			idx.records[start+i].Vector = v
		}
	}

	b.logger.Debug("built index", "combination", combo.Name, "records", len(idx.records), "skipped", idx.skipped)
	return idx, nil
}

// embedBatch embeds texts with retry. Cancellation is returned as-is,
// anything else is wrapped in ErrProviderFailure.
func embedBatch(ctx context.Context, embedder ai.Embedder, texts []string, s settings) ([][]float32, error) {
	var vectors [][]float32
	err := ai.RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(texts) {
			return ai.Permanent(fmt.Errorf("%w: got %d vectors for %d texts", ai.ErrEmbeddingCountMismatch, len(vectors), len(texts)))
		}
		return nil
	}, s.maxAttempts, s.retryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	return vectors, nil
}
