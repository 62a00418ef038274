// Package scoring defines the contract shared by answer-scoring engines.
//
// An engine compares a retrieved target value against the expected answer
// and reports an overall score in [0,1] together with the sub-scores that
// produced it. Engines live in subpackages: sqlscore for query-language
// statements and docscore for regulatory and procedural documents.
package scoring

import (
	"context"

	"github.com/poiesic/ragsweep/similarity"
)

// Scorer compares an expected answer with a retrieved one.
// Implementations must be safe for concurrent use.
type Scorer interface {
	// Name identifies the engine, e.g. "structured-query".
	Name() string

	// Score returns the overall score and per-criterion breakdown.
	Score(ctx context.Context, expected, actual string) (Result, error)
}

// Result is the outcome of one comparison.
type Result struct {
	Score     float64            // Weighted sum of criteria, clamped to [0,1]
	Breakdown map[string]float64 // Unweighted sub-score per criterion
}

// Criterion is one weighted sub-score.
type Criterion struct {
	Name   string
	Weight float64
	Score  float64
}

// Combine sums weight × score over criteria and clamps the total to [0,1].
// Weights are not required to sum to 1.
func Combine(criteria ...Criterion) Result {
	res := Result{Breakdown: make(map[string]float64, len(criteria))}
	var total float64
	for _, c := range criteria {
		sub := similarity.Clamp01(c.Score)
		res.Breakdown[c.Name] = sub
		total += c.Weight * sub
	}
	res.Score = similarity.Clamp01(total)
	return res
}
