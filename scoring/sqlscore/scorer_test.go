package sqlscore

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorer_IdenticalStatements(t *testing.T) {
	s := NewScorer()

	res, err := s.Score(context.Background(), "SELECT id FROM users", "SELECT id FROM users")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Score, 1e-9)
	for _, key := range []string{CriterionTables, CriterionColumns, CriterionJoins, CriterionSyntax, CriterionKeywords, CriterionDifference} {
		assert.InDelta(t, 1.0, res.Breakdown[key], 1e-9, key)
	}
}

func TestScorer_Criteria(t *testing.T) {
	s := NewScorer()
	ctx := context.Background()

	tests := []struct {
		name     string
		expected string
		actual   string
		check    func(t *testing.T, breakdown map[string]float64)
	}{
		{
			name:     "missing relation halves the table score",
			expected: "SELECT id FROM users JOIN orders ON users.id = orders.user_id",
			actual:   "SELECT id FROM users",
			check: func(t *testing.T, b map[string]float64) {
				assert.InDelta(t, 0.5, b[CriterionTables], 1e-9)
				assert.InDelta(t, 0.0, b[CriterionJoins], 1e-9)
				assert.Equal(t, 1.0, b[CriterionSyntax])
			},
		},
		{
			name:     "unparseable actual zeroes syntax",
			expected: "SELECT name FROM users",
			actual:   "SELECT name FROM users WHERE",
			check: func(t *testing.T, b map[string]float64) {
				assert.Equal(t, 0.0, b[CriterionSyntax])
				assert.Equal(t, 1.0, b[CriterionTables])
			},
		},
		{
			name:     "case differences are ignored",
			expected: "select ID from Users",
			actual:   "SELECT id FROM users",
			check: func(t *testing.T, b map[string]float64) {
				assert.Equal(t, 1.0, b[CriterionTables])
				assert.Equal(t, 1.0, b[CriterionColumns])
			},
		},
		{
			name:     "difference penalty counts mismatches",
			expected: "SELECT a, b FROM t",
			actual:   "SELECT c, d FROM u",
			check: func(t *testing.T, b map[string]float64) {
				// tables: t, u; columns: a, b, c, d
				assert.InDelta(t, 0.4, b[CriterionDifference], 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Score(ctx, tt.expected, tt.actual)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 1.0)
			tt.check(t, res.Breakdown)
		})
	}
}

func TestScorer_Weights(t *testing.T) {
	assert.Equal(t, Name, NewScorer().Name())
	assert.Equal(t, DefaultWeights(), NewScorer().Weights())

	onlySyntax := NewScorer(WithWeights(Weights{Syntax: 1}))
	res, err := onlySyntax.Score(context.Background(), "SELECT a FROM t", "SELECT b FROM u")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 1e-9)

	doubled := NewScorer(WithWeights(Weights{Tables: 2, Columns: 2}))
	res, err = doubled.Score(context.Background(), "SELECT a FROM t", "SELECT a FROM t")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score, "overall score is clamped")
}

func TestScorer_ScoreBounds(t *testing.T) {
	s := NewScorer()
	rng := rand.New(rand.NewPCG(7, 11))
	vocab := []string{"SELECT", "FROM", "WHERE", "JOIN", "users", "orders", "id", "=", ",", "(", ")", "'x'", "GROUP BY", "ON", "*", ""}

	randomText := func() string {
		n := rng.IntN(12)
		parts := make([]string, n)
		for i := range parts {
			parts[i] = vocab[rng.IntN(len(vocab))]
		}
		return strings.Join(parts, " ")
	}

	for i := 0; i < 200; i++ {
		res, err := s.Score(context.Background(), randomText(), randomText())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 1.0)
	}

	res, err := s.Score(context.Background(), "", "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 1.0)
}

func TestScorer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScorer().Score(ctx, "SELECT 1", "SELECT 1")
	assert.ErrorIs(t, err, context.Canceled)
}
