package mediagrid

import "math"

// coverRatio caps the share of the canvas given to the cover item of a
// three or four item group.
const coverRatio = 0.66

// layoutTwo places two items either stacked or side by side.
func layoutTwo(c Constraints, t traits) shape {
	r0, r1 := t.ratios[0], t.ratios[1]
	maxWidth := int(c.MaxWidth)

	switch {
	case t.allWide && t.avgRatio > 1.4*c.MaxRatio() && math.Abs(r1-r0) < 0.2:
		// Two wide items with similar ratios, one above the other.
		h := round(math.Max(math.Min(c.MaxWidth/r0, math.Min(c.MaxWidth/r1, (c.MaxHeight-c.Gap)/2)), c.MinHeight/2))
		return shape{
			width:  maxWidth,
			height: round(float64(h)*2 + c.Gap),
			cols:   []int{maxWidth},
			rows:   []int{h, h},
			cells:  stackedCells(2),
		}

	case t.allWide:
		// Two wide items with different ratios, one above the other.
		h0, h1 := stretch(c.MaxWidth/r0, c.MaxWidth/r1, c.MinHeight)
		h0i, h1i := round(h0), round(h1)
		return shape{
			width:  maxWidth,
			height: round(float64(h0i+h1i) + c.Gap),
			cols:   []int{maxWidth},
			rows:   []int{h0i, h1i},
			cells:  stackedCells(2),
		}

	case t.allSquare:
		// Next to each other at the same width.
		w := (c.MaxWidth - c.Gap) / 2
		h := math.Max(math.Min(w/r0, math.Min(w/r1, c.MaxHeight)), c.MinHeight)
		wi, hi := round(w), round(h)
		return shape{
			width:  maxWidth,
			height: hi,
			cols:   []int{wi, maxWidth - wi},
			rows:   []int{hi},
			cells:  sideBySideCells(2),
		}

	default:
		// Next to each other, widths chosen so both share one height.
		w0 := (c.MaxWidth - c.Gap) / r1 / (1/r0 + 1/r1)
		w1 := c.MaxWidth - w0 - c.Gap
		h := math.Max(math.Min(c.MaxHeight, math.Min(w0/r0, w1/r1)), c.MinHeight)
		hi := round(h)
		return shape{
			width:  round(w0 + w1 + c.Gap),
			height: hi,
			cols:   []int{round(w0), round(w1)},
			rows:   []int{hi},
			cells:  sideBySideCells(2),
		}
	}
}

// coverAbove reports whether a three or four item group puts its first item
// above the others rather than to their left.
func coverAbove(c Constraints, t traits) bool {
	return t.ratios[0] > 1.2*c.MaxRatio() || t.avgRatio > 1.5*c.MaxRatio() || t.allWide
}

// layoutThree places a cover above or to the left of two smaller items.
func layoutThree(c Constraints, t traits) shape {
	r := t.ratios

	if coverAbove(c, t) {
		hCover := math.Min(c.MaxWidth/r[0], (c.MaxHeight-c.Gap)*coverRatio)
		w2 := (c.MaxWidth - c.Gap) / 2
		h := math.Min(c.MaxHeight-hCover-c.Gap, math.Min(w2/r[1], w2/r[2]))
		hCover, h = stretch(hCover, h, c.MinHeight)

		return shape{
			width:  int(c.MaxWidth),
			height: round(hCover + h + c.Gap),
			cols:   []int{round(w2), int(c.MaxWidth - math.Round(w2))},
			rows:   []int{round(hCover), round(h)},
			cells: []cell{
				{colSpan: 2, rowSpan: 1, startCol: 0, startRow: 0},
				{colSpan: 1, rowSpan: 1, startCol: 0, startRow: 1},
				{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 1},
			},
		}
	}

	height := math.Min(c.MaxHeight, c.MaxWidth*coverRatio/t.avgRatio)
	wCover := math.Min(height*r[0], (c.MaxWidth-c.Gap)*coverRatio)
	h1 := r[1] * (height - c.Gap) / (r[2] + r[1])
	h0 := height - h1 - c.Gap
	w := math.Min(c.MaxWidth-wCover-c.Gap, math.Min(h1*r[2], h0*r[1]))

	return shape{
		width:  round(wCover + w + c.Gap),
		height: round(height),
		cols:   []int{round(wCover), round(w)},
		rows:   []int{round(h0), round(h1)},
		cells: []cell{
			{colSpan: 1, rowSpan: 2, startCol: 0, startRow: 0},
			{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 0},
			{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 1},
		},
	}
}

// layoutFour places a cover above or to the left of three smaller items.
func layoutFour(c Constraints, t traits) shape {
	r := t.ratios

	if coverAbove(c, t) {
		hCover := math.Min(c.MaxWidth/r[0], (c.MaxHeight-c.Gap)*coverRatio)
		h := (c.MaxWidth - 2*c.Gap) / (r[1] + r[2] + r[3])
		w0 := h * r[1]
		w1 := h * r[2]
		h = math.Min(c.MaxHeight-hCover-c.Gap, h)
		hCover, h = stretch(hCover, h, c.MinHeight)

		return shape{
			width:  int(c.MaxWidth),
			height: round(hCover + h + c.Gap),
			cols:   []int{round(w0), round(w1), int(c.MaxWidth - math.Round(w0) - math.Round(w1))},
			rows:   []int{round(hCover), round(h)},
			cells: []cell{
				{colSpan: 3, rowSpan: 1, startCol: 0, startRow: 0},
				{colSpan: 1, rowSpan: 1, startCol: 0, startRow: 1},
				{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 1},
				{colSpan: 1, rowSpan: 1, startCol: 2, startRow: 1},
			},
		}
	}

	height := math.Min(c.MaxHeight, c.MaxWidth*coverRatio/t.avgRatio)
	wCover := math.Min(height*r[0], (c.MaxWidth-c.Gap)*coverRatio)
	w := (height - 2*c.Gap) / (1/r[1] + 1/r[2] + 1/r[3])
	h0 := w / r[1]
	h1 := w / r[2]
	h2 := w / r[3]
	w = math.Min(c.MaxWidth-wCover-c.Gap, w)

	return shape{
		width:  round(wCover + c.Gap + w),
		height: round(height),
		cols:   []int{round(wCover), round(w)},
		rows:   []int{round(h0), round(h1), round(h2)},
		cells: []cell{
			{colSpan: 1, rowSpan: 3, startCol: 0, startRow: 0},
			{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 0},
			{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 1},
			{colSpan: 1, rowSpan: 1, startCol: 1, startRow: 2},
		},
	}
}

// stretch scales a and b up proportionally so they sum to minTotal. It only
// applies when the unscaled sum falls short.
func stretch(a, b, minTotal float64) (float64, float64) {
	if total := a + b; total < minTotal {
		return minTotal * (a / total), minTotal * (b / total)
	}
	return a, b
}

// stackedCells returns n single cells stacked in one column.
func stackedCells(n int) []cell {
	cells := make([]cell, n)
	for i := range cells {
		cells[i] = cell{colSpan: 1, rowSpan: 1, startRow: i}
	}
	return cells
}

// sideBySideCells returns n single cells side by side in one row.
func sideBySideCells(n int) []cell {
	cells := make([]cell, n)
	for i := range cells {
		cells[i] = cell{colSpan: 1, rowSpan: 1, startCol: i}
	}
	return cells
}
