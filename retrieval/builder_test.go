package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/ai/mock"
	"github.com/poiesic/ragsweep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []core.Row {
	return []core.Row{
		{"title": core.Text("users"), "desc": core.Text("all users"), "sql": core.Text("SELECT * FROM users")},
		{"title": core.Text("orders"), "sql": core.Text("SELECT * FROM orders")},
		{"title": core.Text("items"), "desc": core.Number(3), "sql": core.Text("SELECT * FROM items")},
		{"title": core.Text("no target"), "desc": core.Text("x")},
	}
}

func TestNewBuilder(t *testing.T) {
	_, err := NewBuilder(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewBuilder(mock.NewMockEmbedder(), WithBatchSize(0))
	assert.ErrorIs(t, err, ErrInvalidBatchSize)

	_, err = NewBuilder(mock.NewMockEmbedder(), WithRetry(0, time.Millisecond))
	assert.ErrorIs(t, err, ai.ErrInvalidMaxAttempts)

	b, err := NewBuilder(mock.NewMockEmbedder(), WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, b.logger)
}

func TestConcatFields(t *testing.T) {
	row := core.Row{"a": core.Text("x"), "b": core.Number(2), "c": core.Null()}

	text, ok := ConcatFields(row, []string{"b", "a", "c"})
	require.True(t, ok)
	assert.Equal(t, "2 | x | ", text)

	_, ok = ConcatFields(row, []string{"a", "missing"})
	assert.False(t, ok)
}

func TestBuilder_Build(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	b, err := NewBuilder(embedder, WithBatchSize(1))
	require.NoError(t, err)

	combo := core.NewCombination("title", "desc")
	idx, err := b.Build(context.Background(), sampleRows(), combo, "sql")
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 2, idx.Skipped())
	assert.Equal(t, combo, idx.Combination())

	records := idx.Records()
	assert.Equal(t, 0, records[0].Position)
	assert.Equal(t, "users | all users", records[0].Text)
	assert.Equal(t, "SELECT * FROM users", records[0].Target.String())
	assert.Equal(t, 2, records[1].Position)
	assert.Equal(t, "items | 3", records[1].Text)
	assert.NotEmpty(t, records[1].Vector)

	assert.Equal(t, 2, embedder.CallCount(), "batch size 1 embeds each record separately")
	assert.Equal(t, []string{"users | all users", "items | 3"}, embedder.Texts())
}

func TestBuilder_Build_EmptyIndex(t *testing.T) {
	b, err := NewBuilder(mock.NewMockEmbedder())
	require.NoError(t, err)

	_, err = b.Build(context.Background(), sampleRows(), core.NewCombination("missing"), "sql")
	assert.ErrorIs(t, err, ErrEmptyIndex)

	_, err = b.Build(context.Background(), nil, core.NewCombination("title"), "sql")
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestBuilder_Build_ProviderFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("rate limited")
	}
	b, err := NewBuilder(embedder, WithRetry(2, time.Millisecond))
	require.NoError(t, err)

	_, err = b.Build(context.Background(), sampleRows(), core.NewCombination("title"), "sql")
	assert.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Equal(t, 2, embedder.CallCount())
}

func TestBuilder_Build_RetryRecovers(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}
	b, err := NewBuilder(embedder, WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	idx, err := b.Build(context.Background(), sampleRows(), core.NewCombination("title"), "sql")
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 2, calls)
}

func TestBuilder_Build_CountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		return [][]float32{{1}}, nil
	}
	b, err := NewBuilder(embedder, WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	_, err = b.Build(context.Background(), sampleRows(), core.NewCombination("title"), "sql")
	assert.ErrorIs(t, err, ErrProviderFailure)
	assert.ErrorIs(t, err, ai.ErrEmbeddingCountMismatch)
	assert.Equal(t, 1, calls, "count mismatch is not retried")
}

func TestBuilder_Build_Canceled(t *testing.T) {
	b, err := NewBuilder(mock.NewMockEmbedder())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.Build(ctx, sampleRows(), core.NewCombination("title"), "sql")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrProviderFailure)
}
