package science

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// PrecisionAtTopK is the precision of the k highest scored items of a binary
// relevance ranking. yTrue holds exactly two distinct labels, the larger one
// being relevant. The count of relevant items in the top k is divided by
// min(number of relevant items, k) so a perfect ranking always scores 1.
//
// Items with equal scores are ranked by descending position.
func PrecisionAtTopK(yTrue, yScore []float64, k int) (float64, error) {
	if len(yTrue) != len(yScore) {
		return 0, fmt.Errorf("%d labels for %d scores: %w", len(yTrue), len(yScore), ErrInvalidArgument)
	}
	if k <= 0 {
		return 0, fmt.Errorf("k = %d: %w", k, ErrInvalidArgument)
	}

	levels := slices.Clone(yTrue)
	slices.Sort(levels)
	levels = slices.Compact(levels)
	switch {
	case len(levels) > 2:
		return 0, fmt.Errorf("%d levels: %w", len(levels), ErrTooManyLevels)
	case len(levels) < 2:
		return 0, fmt.Errorf("need a negative and a positive label: %w", ErrInvalidArgument)
	}
	pos := levels[1]

	nPos := 0
	for _, y := range yTrue {
		if y == pos {
			nPos++
		}
	}

	scores := slices.Clone(yScore)
	order := make([]int, len(scores))
	floats.ArgsortStable(scores, order)
	slices.Reverse(order)

	relevant := 0
	for _, i := range order[:min(k, len(order))] {
		if yTrue[i] == pos {
			relevant++
		}
	}
	return float64(relevant) / float64(min(nPos, k)), nil
}
