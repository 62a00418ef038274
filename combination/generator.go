package combination

import (
	"github.com/poiesic/ragsweep/core"
)

// Count returns the number of combinations produced for n fields.
func Count(n int) int {
	if n <= 0 {
		return 0
	}
	return (1 << n) - 1
}

// Generate returns all 2^n-1 non-empty subsets of fs.
// Fails with core.ErrInvalidFieldSet when fs is empty or has more than
// core.MaxFields entries.
func Generate(fs core.FieldSet) ([]core.Combination, error) {
	if err := core.ValidateFieldSet(fs); err != nil {
		return nil, err
	}

	n := len(fs)
	combos := make([]core.Combination, 0, Count(n))
	for mask := 1; mask < 1<<n; mask++ {
		fields := make([]string, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				fields = append(fields, fs[i])
			}
		}
		combos = append(combos, core.NewCombination(fields...))
	}
	return combos, nil
}
