package experiment

import (
	"fmt"

	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/scoring"
	"github.com/poiesic/ragsweep/scoring/docscore"
	"github.com/poiesic/ragsweep/scoring/sqlscore"
)

// NewScorer returns the scoring engine selected by engine.
// Nil weights fall back to the engine defaults.
func NewScorer(engine core.ScoringEngine, sqlWeights *sqlscore.Weights, docWeights *docscore.Weights) (scoring.Scorer, error) {
	switch engine {
	case core.EngineStructuredQuery:
		var opts []sqlscore.Option
		if sqlWeights != nil {
			opts = append(opts, sqlscore.WithWeights(*sqlWeights))
		}
		return sqlscore.NewScorer(opts...), nil
	case core.EngineDomainDocument:
		var opts []docscore.Option
		if docWeights != nil {
			opts = append(opts, docscore.WithWeights(*docWeights))
		}
		return docscore.NewScorer(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownScoringEngine, engine)
	}
}
