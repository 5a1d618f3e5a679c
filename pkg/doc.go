// Package pkg holds the libraries behind the mediagrid CLI and HTTP API.
//
// # Overview
//
// Mediagrid arranges a group of photos and videos into a compact mosaic:
// a grid of columns and rows where every item covers a rectangle of cells
// and keeps an aspect ratio close to its own. The data flow is:
//
//	items JSON
//	     ↓
//	[io] (decode items, default ids)
//	     ↓
//	[pipeline] (validate, cache lookup, hooks)
//	     ↓
//	[mediagrid] (pick a layout and assemble the grid)
//	     ↓
//	layout JSON
//
// # Quick Start
//
// Lay out any slice whose elements report their size:
//
//	res, err := mediagrid.Generate(items, mediagrid.Default())
//	if err != nil {
//	    return err
//	}
//	if res == nil {
//	    // fewer than two items
//	}
//	for _, t := range res.Tiles {
//	    fmt.Println(t.StartRow, t.StartCol, t.RowSpan, t.ColSpan)
//	}
//
// # Main Packages
//
// [mediagrid] - The layout engine. Dedicated shapes for two to four items
// and a row partition search for five or more.
//
// [io] - Item and layout JSON.
//
// [pipeline] - Cached layout generation shared by the CLI and the API.
//
// [cache] - File, Redis and MongoDB layout caches with content-hash keys.
//
// [config] - TOML presets and backend settings.
//
// [api] - HTTP endpoints on chi.
//
// [observability] - Hooks for layout, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// [mediagrid]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/mediagrid
// [io]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mediagrid/pkg/errors
package pkg
