package sqlscore

import (
	"context"

	"github.com/poiesic/ragsweep/scoring"
	"github.com/poiesic/ragsweep/similarity"
)

// Name is the engine identifier.
const Name = "structured-query"

// Criterion keys reported in scoring.Result.Breakdown.
const (
	CriterionTables     = "tables"
	CriterionColumns    = "columns"
	CriterionJoins      = "joins"
	CriterionSyntax     = "syntax"
	CriterionKeywords   = "keywords"
	CriterionDifference = "difference"
)

// mismatchPenalty is deducted from the difference criterion per missing or extra term.
const mismatchPenalty = 0.1

// Weights sets the contribution of each criterion to the overall score.
type Weights struct {
	Tables     float64 `yaml:"tables" json:"tables"`
	Columns    float64 `yaml:"columns" json:"columns"`
	Joins      float64 `yaml:"joins" json:"joins"`
	Syntax     float64 `yaml:"syntax" json:"syntax"`
	Keywords   float64 `yaml:"keywords" json:"keywords"`
	Difference float64 `yaml:"difference" json:"difference"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		Tables:     0.25,
		Columns:    0.25,
		Joins:      0.20,
		Syntax:     0.15,
		Keywords:   0.10,
		Difference: 0.05,
	}
}

// Scorer implements scoring.Scorer for query-language statements.
type Scorer struct {
	weights Weights
}

var _ scoring.Scorer = (*Scorer)(nil)

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// NewScorer creates a structured-query Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "structured-query".
func (s *Scorer) Name() string {
	return Name
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score compares the expected statement with the retrieved one.
func (s *Scorer) Score(ctx context.Context, expected, actual string) (scoring.Result, error) {
	if err := ctx.Err(); err != nil {
		return scoring.Result{}, err
	}
	return s.Compare(Analyze(expected), Analyze(actual)), nil
}

// Compare scores two analyses. Syntax reflects only the actual statement.
func (s *Scorer) Compare(expected, actual Analysis) scoring.Result {
	tables := similarity.CompareSets(expected.Tables, actual.Tables)
	columns := similarity.CompareSets(expected.Columns, actual.Columns)
	joins := similarity.CompareSets(expected.Joins, actual.Joins)
	keywords := similarity.CompareSets(expected.Keywords, actual.Keywords)

	syntax := 0.0
	if actual.Valid() {
		syntax = 1
	}

	mismatches := tables.Mismatches() + columns.Mismatches() + joins.Mismatches() + keywords.Mismatches()
	difference := max(0, 1-mismatchPenalty*float64(mismatches))

	w := s.weights
	return scoring.Combine(
		scoring.Criterion{Name: CriterionTables, Weight: w.Tables, Score: tables.Score},
		scoring.Criterion{Name: CriterionColumns, Weight: w.Columns, Score: columns.Score},
		scoring.Criterion{Name: CriterionJoins, Weight: w.Joins, Score: joins.Score},
		scoring.Criterion{Name: CriterionSyntax, Weight: w.Syntax, Score: syntax},
		scoring.Criterion{Name: CriterionKeywords, Weight: w.Keywords, Score: keywords.Score},
		scoring.Criterion{Name: CriterionDifference, Weight: w.Difference, Score: difference},
	)
}
