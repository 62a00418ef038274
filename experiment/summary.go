package experiment

import "github.com/poiesic/ragsweep/core"

// Summarize computes best, worst and mean score across combinations.
// Under equal mean scores the first combination wins best and the last
// combination wins worst.
func Summarize(results []core.CombinationResult) core.Summary {
	if len(results) == 0 {
		return core.Summary{}
	}

	best, worst := results[0], results[0]
	var total float64
	for i, res := range results {
		total += res.MeanScore
		if i == 0 {
			continue
		}
		if res.MeanScore > best.MeanScore {
			best = res
		}
		if res.MeanScore <= worst.MeanScore {
			worst = res
		}
	}

	return core.Summary{
		BestCombination:  best.Name,
		BestScore:        best.MeanScore,
		WorstCombination: worst.Name,
		WorstScore:       worst.MeanScore,
		MeanScore:        total / float64(len(results)),
		CombinationCount: len(results),
	}
}
