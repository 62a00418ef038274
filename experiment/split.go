package experiment

import (
	"math"
	"math/rand/v2"

	"github.com/poiesic/ragsweep/core"
)

// ShuffleFunc permutes rows in place.
type ShuffleFunc func(rows []core.Row)

// SeededShuffle returns a ShuffleFunc that produces the same permutation for
// the same seed and row count.
func SeededShuffle(seed int64) ShuffleFunc {
	return func(rows []core.Row) {
		rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
	}
}

// RandomShuffle permutes rows using the process-wide random source.
func RandomShuffle(rows []core.Row) {
	rand.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})
}

// Split shuffles a copy of rows and cuts it at floor(len(rows) × ratio).
// The first part is the training split, the remainder the testing split.
// A nil shuffle keeps input order. The input slice is not modified.
func Split(rows []core.Row, ratio float64, shuffle ShuffleFunc) (train, test []core.Row) {
	shuffled := make([]core.Row, len(rows))
	copy(shuffled, rows)
	if shuffle != nil {
		shuffle(shuffled)
	}

	cut := int(math.Floor(float64(len(shuffled)) * ratio))
	cut = max(0, min(cut, len(shuffled)))
	return shuffled[:cut:cut], shuffled[cut:]
}
