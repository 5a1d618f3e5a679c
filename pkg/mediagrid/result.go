package mediagrid

// Result is a computed grid.
//
// ColumnSizes and RowSizes list the grid tracks left to right and top to
// bottom. Width and Height are the canvas size; values are rounded to whole
// pixels independently, so sums may differ from the canvas by a pixel.
type Result[T any] struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	ColumnSizes []int     `json:"column_sizes"`
	RowSizes    []int     `json:"row_sizes"`
	Tiles       []Tile[T] `json:"tiles"`
}

// Tile places one element on the grid.
type Tile[T any] struct {
	Element  T   `json:"element"`
	ColSpan  int `json:"col_span"`
	RowSpan  int `json:"row_span"`
	StartCol int `json:"start_col"`
	StartRow int `json:"start_row"`

	// Width is the exact pixel width of the tile. It is only set for groups
	// of five or more items and is zero otherwise.
	Width int `json:"width,omitempty"`
}

// ColumnCount returns the number of grid columns.
func (r *Result[T]) ColumnCount() int { return len(r.ColumnSizes) }

// RowCount returns the number of grid rows.
func (r *Result[T]) RowCount() int { return len(r.RowSizes) }

// Elements returns the tile elements in tile order.
func (r *Result[T]) Elements() []T {
	out := make([]T, len(r.Tiles))
	for i, t := range r.Tiles {
		out[i] = t.Element
	}
	return out
}

// RowWidths sums Tile.Width per row. For groups of five or more items each
// entry equals the maximum width the layout was computed for.
func (r *Result[T]) RowWidths() []int {
	out := make([]int, len(r.RowSizes))
	for _, t := range r.Tiles {
		if t.StartRow < len(out) {
			out[t.StartRow] += t.Width
		}
	}
	return out
}

// cell is a tile without its element.
type cell struct {
	colSpan, rowSpan   int
	startCol, startRow int
	width              int
}

// shape is the geometry of a layout before elements are attached.
type shape struct {
	width, height int
	cols, rows    []int
	cells         []cell
}

// attach pairs cells with items by index.
func attach[T any](s shape, items []T) *Result[T] {
	tiles := make([]Tile[T], len(s.cells))
	for i, c := range s.cells {
		tiles[i] = Tile[T]{
			Element:  items[i],
			ColSpan:  c.colSpan,
			RowSpan:  c.rowSpan,
			StartCol: c.startCol,
			StartRow: c.startRow,
			Width:    c.width,
		}
	}
	return &Result[T]{
		Width:       s.width,
		Height:      s.height,
		ColumnSizes: s.cols,
		RowSizes:    s.rows,
		Tiles:       tiles,
	}
}
