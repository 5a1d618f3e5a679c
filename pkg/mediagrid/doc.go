// Package mediagrid computes grid placements for grouped media.
//
// # Overview
//
// A group of photos or videos is described only by the aspect ratio of each
// item. [Generate] turns an ordered list of such items into a compact mosaic:
// the canvas size, explicit column widths, explicit row heights and one
// [Tile] per item giving its starting cell and its row and column spans.
//
//	items := []mediagrid.Dimensions{
//	    {Width: 1280, Height: 720},
//	    {Width: 1080, Height: 1350},
//	    {Width: 1000, Height: 1000},
//	}
//	res, err := mediagrid.Generate(items, mediagrid.Default())
//	if err != nil {
//	    return err
//	}
//	if res == nil {
//	    // fewer than two items: nothing to lay out
//	}
//
// # Layout Shapes
//
// Groups of two, three and four items use hand-picked shapes chosen from the
// aggregate traits of their ratios (all wide, all square, average ratio):
//
//   - 2 items: stacked vertically (wide items) or side by side
//   - 3 items: a cover above two tiles, or a cover left of two stacked tiles
//   - 4 items: a cover above three tiles, or a cover left of three stacked tiles
//
// Larger groups are split into one, two or three rows of consecutive items.
// Every possible split is scored by how far its total height lands from
// min(MaxWidth, MaxHeight), with a small penalty for splits whose row lengths
// shrink from top to bottom. The winning split is turned into a shared column
// grid: every interior divider of every row becomes a grid line, so tiles in
// different rows can span different numbers of columns while still lining up
// to the pixel. Tiles on this path carry their exact pixel width in
// [Tile.Width].
//
// # Element Types
//
// Any type implementing [Sized] can be laid out. Tiles hold the caller's
// element values in input order; the engine never copies sizes back into them.
//
// # Concurrency
//
// Generate is a pure function: it keeps no state between calls, performs no
// I/O and is safe for concurrent use. Its cost grows quadratically with the
// number of items, so callers accepting untrusted input should cap the group
// size before calling it.
package mediagrid
