package mediagrid

import "slices"

// assembleGrid turns a row split into tiles on a shared column grid.
//
// Each row is filled left to right with tiles ratio*height wide; the last
// tile takes whatever is left so every row spans exactly MaxWidth. The inner
// edges of all rows together form the grid lines, and each tile then spans
// as many columns as it takes to reach its own width.
func assembleGrid(s rowSplit, ratios []float64, c Constraints) shape {
	maxWidth := int(c.MaxWidth)
	cells := make([]cell, 0, len(ratios))
	rows := make([]int, 0, len(s.lengths))
	var lines []int
	var totalHeight float64

	next := 0
	for r, n := range s.lengths {
		h := s.heights[r]
		totalHeight += h
		rows = append(rows, round(h))

		used := 0
		for j := 0; j < n; j++ {
			w := ratios[next] * h
			if j == n-1 {
				w = c.MaxWidth - float64(used)
			}
			next++
			used += round(w)
			if j < n-1 && !slices.Contains(lines, used) {
				lines = append(lines, used)
			}
			cells = append(cells, cell{colSpan: 1, rowSpan: 1, startRow: r, width: round(w)})
		}
	}

	slices.Sort(lines)
	lines = append(lines, maxWidth)
	cols := make([]int, len(lines))
	prev := 0
	for i, offset := range lines {
		cols[i] = offset - prev
		prev = offset
	}

	i := 0
	for _, n := range s.lengths {
		col := 0
		for j := 0; j < n; j++ {
			cl := &cells[i]
			cl.startCol = col
			cl.colSpan = spanColumns(cols, col, cl.width)
			col += cl.colSpan
			i++
		}
	}

	return shape{
		width:  maxWidth,
		height: round(totalHeight + c.Gap*float64(len(rows)-1)),
		cols:   cols,
		rows:   rows,
		cells:  cells,
	}
}

// spanColumns counts the columns from start whose sizes add up to width.
// It runs to the last column if no prefix matches exactly.
func spanColumns(cols []int, start, width int) int {
	span, acc := 0, 0
	for i := start; i < len(cols); i++ {
		acc += cols[i]
		span++
		if acc == width {
			break
		}
	}
	return span
}
