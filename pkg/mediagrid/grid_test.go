package mediagrid

import "testing"

func TestSpanColumns(t *testing.T) {
	cols := []int{87, 174, 49, 125, 130}

	tests := []struct {
		name  string
		start int
		width int
		want  int
	}{
		{"single column", 0, 87, 1},
		{"two columns", 2, 174, 2},
		{"three columns", 0, 310, 3},
		{"no exact match runs to end", 3, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spanColumns(cols, tt.start, tt.width); got != tt.want {
				t.Errorf("spanColumns(%d, %d) = %d, want %d", tt.start, tt.width, got, tt.want)
			}
		})
	}
}

func TestAssembleGridSharesLines(t *testing.T) {
	// Two rows of squares: 2 over 3 in 300px with no gap.
	s := rowSplit{
		lengths: []int{2, 3},
		heights: []float64{150, 100},
	}
	c := NewConstraints(300, 1000, 100, 1)
	c.Gap = 0

	got := assembleGrid(s, []float64{1, 1, 1, 1, 1}, c)

	wantCols := []int{100, 50, 50, 100}
	if !equalInts(got.cols, wantCols) {
		t.Fatalf("cols = %v, want %v", got.cols, wantCols)
	}
	if !equalInts(got.rows, []int{150, 100}) {
		t.Errorf("rows = %v, want [150 100]", got.rows)
	}
	if got.width != 300 || got.height != 250 {
		t.Errorf("size = %dx%d, want 300x250", got.width, got.height)
	}

	want := []cell{
		{colSpan: 2, rowSpan: 1, startCol: 0, startRow: 0, width: 150},
		{colSpan: 2, rowSpan: 1, startCol: 2, startRow: 0, width: 150},
		{colSpan: 1, rowSpan: 1, startCol: 0, startRow: 1, width: 100},
		{colSpan: 2, rowSpan: 1, startCol: 1, startRow: 1, width: 100},
		{colSpan: 1, rowSpan: 1, startCol: 3, startRow: 1, width: 100},
	}
	for i := range want {
		if got.cells[i] != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, got.cells[i], want[i])
		}
	}
}

func TestAssembleGridLastTileTakesRemainder(t *testing.T) {
	s := rowSplit{lengths: []int{3}, heights: []float64{100.4}}
	c := NewConstraints(301, 1000, 100, 1)
	c.Gap = 0

	got := assembleGrid(s, []float64{1, 1, 1}, c)

	widths := []int{got.cells[0].width, got.cells[1].width, got.cells[2].width}
	if !equalInts(widths, []int{100, 100, 101}) {
		t.Errorf("widths = %v, want [100 100 101]", widths)
	}
	if !equalInts(got.cols, []int{100, 100, 101}) {
		t.Errorf("cols = %v, want [100 100 101]", got.cols)
	}
}
