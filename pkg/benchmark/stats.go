package benchmark

import (
	"sort"

	"github.com/pkg/errors"
)

// Median returns the median of values. The input is left untouched.
// It fails on an empty sequence; callers must treat that case as a phase
// failure before reducing.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("cannot compute median of an empty sequence")
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[middle], nil
	}

	return (sorted[middle-1] + sorted[middle]) / 2, nil
}
