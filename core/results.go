package core

import (
	"cmp"
	"slices"
)

// RowScore is the outcome of one held-out row. It is never mutated after creation.
type RowScore struct {
	Index      int                `json:"index"`      // Position in the testing split
	Query      string             `json:"query"`
	Expected   string             `json:"expected"`
	Retrieved  string             `json:"retrieved"`  // Target value of the nearest training record
	Similarity float64            `json:"similarity"` // Cosine similarity of the nearest training record
	Score      float64            `json:"score"`
	Breakdown  map[string]float64 `json:"breakdown"`
}

// CombinationResult aggregates the row scores of one combination.
type CombinationResult struct {
	Name             string     `json:"name"`
	Fields           []string   `json:"fields"`
	MeanScore        float64    `json:"meanScore"`
	MeanSimilarity   float64    `json:"meanSimilarity"`
	RowCount         int        `json:"rowCount"`    // Rows that produced a score
	TestRows         int        `json:"testRows"`    // Rows in the testing split
	SkippedRows      int        `json:"skippedRows"` // Testing rows skipped during retrieval or scoring
	IndexSize        int        `json:"indexSize"`   // Training records embedded into the index
	ProcessingTimeMs int64      `json:"processingTimeMs"`
	Failed           bool       `json:"failed"`
	Error            string     `json:"error,omitempty"`
	RowScores        []RowScore `json:"rowScores"`
}

// Summary holds best/worst/mean statistics across combinations.
type Summary struct {
	BestCombination  string  `json:"bestCombination"`
	BestScore        float64 `json:"bestScore"`
	WorstCombination string  `json:"worstCombination"`
	WorstScore       float64 `json:"worstScore"`
	MeanScore        float64 `json:"meanScore"`
	CombinationCount int     `json:"combinationCount"`
}

// ExperimentResult is the artifact handed to presentation code.
// It is immutable once orchestration completes.
type ExperimentResult struct {
	RunID                 string              `json:"runId"`
	ExperimentName        string              `json:"experimentName"`
	ScoringEngine         ScoringEngine       `json:"scoringEngine"`
	Combinations          []CombinationResult `json:"combinations"`
	Summary               Summary             `json:"summary"`
	TotalProcessingTimeMs int64               `json:"totalProcessingTimeMs"`
}

// Ranked returns the combinations ordered by mean score, highest first.
// Equal scores keep enumeration order.
func (r *ExperimentResult) Ranked() []CombinationResult {
	out := make([]CombinationResult, len(r.Combinations))
	copy(out, r.Combinations)
	slices.SortStableFunc(out, func(a, b CombinationResult) int {
		return cmp.Compare(b.MeanScore, a.MeanScore)
	})
	return out
}
