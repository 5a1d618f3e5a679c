package mediagrid

import "math"

const (
	// minRatio clamps very tall items so they cannot collapse a row.
	minRatio = 0.45

	wideRatio   = 1.2
	narrowRatio = 0.8
)

// traits summarises the ratios of a group.
type traits struct {
	ratios    []float64
	allWide   bool
	allSquare bool
	avgRatio  float64
}

// classify computes clamped ratios and the group traits. Items are wide when
// their ratio exceeds 1.2 and square when it lies in [0.8, 1.2].
func classify(sizes []Dimensions) traits {
	t := traits{
		ratios:    make([]float64, len(sizes)),
		allWide:   true,
		allSquare: true,
	}
	var sum float64
	for i, s := range sizes {
		r := math.Max(minRatio, s.Ratio())
		if r <= wideRatio {
			t.allWide = false
			if r < narrowRatio {
				t.allSquare = false
			}
		} else {
			t.allSquare = false
		}
		t.ratios[i] = r
		sum += r
	}
	t.avgRatio = sum / float64(len(sizes))
	return t
}

func round(v float64) int {
	return int(math.Round(v))
}
