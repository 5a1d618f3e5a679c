package mediagrid

import (
	"math"
	"testing"
)

func TestCropRatios(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		avg    float64
		want   []float64
	}{
		{"landscape raises to one", []float64{0.5, 1.5, 2}, 1.33, []float64{1, 1.5, 2}},
		{"portrait lowers to one", []float64{0.5, 1.5, 0.7}, 0.9, []float64{0.5, 1, 0.7}},
		{"boundary is portrait", []float64{1.2, 1}, 1.1, []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cropRatios(tt.ratios, tt.avg)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("cropRatios()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRowHeight(t *testing.T) {
	// Three squares with two 5px gaps in 310px: each is 100px.
	if got := rowHeight([]float64{1, 1, 1}, 310, 5); got != 100 {
		t.Errorf("rowHeight() = %v, want 100", got)
	}
	if got := rowHeight([]float64{2}, 1000, 1.5); got != 500 {
		t.Errorf("rowHeight() = %v, want 500", got)
	}
}

func TestCandidateSplitsOrder(t *testing.T) {
	splits := candidateSplits([]float64{1, 1, 1, 1, 1}, 1000, 1)

	want := [][]int{
		{5},
		{1, 4}, {2, 3}, {3, 2}, {4, 1},
		{1, 1, 3}, {1, 2, 2}, {1, 3, 1},
		{2, 1, 2}, {2, 2, 1},
		{3, 1, 1},
	}
	if len(splits) != len(want) {
		t.Fatalf("got %d splits, want %d", len(splits), len(want))
	}
	for i, s := range splits {
		if !equalInts(s.lengths, want[i]) {
			t.Errorf("split %d = %v, want %v", i, s.lengths, want[i])
		}
		if len(s.heights) != len(s.lengths) {
			t.Errorf("split %d has %d heights for %d rows", i, len(s.heights), len(s.lengths))
		}
	}
}

func TestSplitScore(t *testing.T) {
	tests := []struct {
		name  string
		split rowSplit
		want  float64
	}{
		{
			name:  "single row",
			split: rowSplit{lengths: []int{5}, heights: []float64{200}},
			want:  800,
		},
		{
			name:  "regular rows",
			split: rowSplit{lengths: []int{2, 3}, heights: []float64{500, 300}},
			want:  198,
		},
		{
			name:  "irregular rows penalised",
			split: rowSplit{lengths: []int{3, 2}, heights: []float64{300, 500}},
			want:  198 * irregularPenalty,
		},
		{
			name:  "irregular third row penalised",
			split: rowSplit{lengths: []int{1, 3, 2}, heights: []float64{400, 300, 200}},
			want:  96 * irregularPenalty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.split.score(1000, 2); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBestSplitKeepsFirstOnTie(t *testing.T) {
	splits := []rowSplit{
		{lengths: []int{4}, heights: []float64{100}},
		{lengths: []int{1, 3}, heights: []float64{600, 300}},
		{lengths: []int{2, 2}, heights: []float64{600, 300}},
	}

	got := bestSplit(splits, 1000, 0)
	if !equalInts(got.lengths, []int{1, 3}) {
		t.Errorf("bestSplit() = %v, want [1 3]", got.lengths)
	}
}

func TestBestSplitPrefersRegularRows(t *testing.T) {
	splits := []rowSplit{
		{lengths: []int{3, 2}, heights: []float64{450, 450}},
		{lengths: []int{2, 3}, heights: []float64{450, 450}},
	}

	got := bestSplit(splits, 1000, 0)
	if !equalInts(got.lengths, []int{2, 3}) {
		t.Errorf("bestSplit() = %v, want [2 3]", got.lengths)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
