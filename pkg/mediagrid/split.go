package mediagrid

import (
	"math"
	"slices"
)

// irregularPenalty is applied to splits whose rows get shorter from top to
// bottom.
const irregularPenalty = 1.1

// rowSplit is one way of cutting the items into consecutive rows.
type rowSplit struct {
	lengths []int     // items per row
	heights []float64 // height at which each row exactly fills the width
}

// cropRatios pulls every ratio towards 1: up to 1 for landscape-leaning
// groups (average above 1.1), down to 1 otherwise.
func cropRatios(ratios []float64, avgRatio float64) []float64 {
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		if avgRatio > 1.1 {
			out[i] = math.Max(1, r)
		} else {
			out[i] = math.Min(1, r)
		}
	}
	return out
}

// rowHeight is the height at which items with the given ratios, separated by
// gap, fill exactly width.
func rowHeight(ratios []float64, width, gap float64) float64 {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return (width - (float64(len(ratios))-1)*gap) / sum
}

// candidateSplits lists every split into one, two or three rows. The order is
// fixed: the single row first, then two rows by increasing first row, then
// three rows by increasing first and second row.
func candidateSplits(ratios []float64, width, gap float64) []rowSplit {
	n := len(ratios)
	split := func(lengths ...int) rowSplit {
		s := rowSplit{lengths: lengths, heights: make([]float64, len(lengths))}
		start := 0
		for i, l := range lengths {
			s.heights[i] = rowHeight(ratios[start:start+l], width, gap)
			start += l
		}
		return s
	}

	out := []rowSplit{split(n)}
	for first := 1; first <= n-1; first++ {
		out = append(out, split(first, n-first))
	}
	for first := 1; first <= n-2; first++ {
		for second := 1; second <= n-first-1; second++ {
			out = append(out, split(first, second, n-first-second))
		}
	}
	return out
}

// score is the distance of the split's total height from target, inflated by
// irregularPenalty when a row holds more items than the row below it.
func (s rowSplit) score(target, gap float64) float64 {
	total := gap * float64(len(s.heights)-1)
	for _, h := range s.heights {
		total += h
	}
	diff := math.Abs(total - target)
	if !slices.IsSorted(s.lengths) {
		diff *= irregularPenalty
	}
	return diff
}

// bestSplit returns the lowest scoring split. Ties go to the earliest
// candidate.
func bestSplit(splits []rowSplit, target, gap float64) rowSplit {
	best := -1
	bestDiff := math.MaxFloat64
	for i, s := range splits {
		if d := s.score(target, gap); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return splits[best]
}

// layoutMany lays out five or more items in up to three rows.
func layoutMany(c Constraints, t traits) shape {
	ratios := cropRatios(t.ratios, t.avgRatio)
	splits := candidateSplits(ratios, c.MaxWidth, c.Gap)
	best := bestSplit(splits, math.Min(c.MaxWidth, c.MaxHeight), c.Gap)
	return assembleGrid(best, ratios, c)
}
