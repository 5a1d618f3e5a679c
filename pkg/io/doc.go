// Package io reads item lists and writes computed layouts as JSON.
//
// # Items
//
// An items document lists the media of one group in display order, either
// as a bare array or wrapped in an object:
//
//	[
//	  {"id": "cover", "width": 1920, "height": 1080},
//	  {"id": "photo-2", "width": 1080, "height": 1350, "meta": {"alt": "beach"}}
//	]
//
//	{"items": [...]}
//
// Fields:
//   - id: unique string; defaults to the item's position when omitted
//   - width, height: intrinsic pixel size, both positive
//   - meta: freeform object carried through to the layout output
//
// Use [ImportItems] to read from a file or [ReadItems] for any io.Reader.
//
// # Layouts
//
// [WriteLayout] and [ExportLayout] encode a [Layout] with the canvas size, the
// column and row tracks and one tile per item:
//
//	{
//	  "width": 1000,
//	  "height": 1128,
//	  "column_sizes": [1000],
//	  "row_sizes": [563, 563],
//	  "tiles": [
//	    {"element": {"id": "a", ...}, "col_span": 1, "row_span": 1, "start_col": 0, "start_row": 0},
//	    ...
//	  ]
//	}
//
// Tiles appear in item order. [ReadLayout] and [ImportLayout] decode the same
// format, which is also what the cache stores.
package io
