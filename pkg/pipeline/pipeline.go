// Package pipeline runs the layout engine behind a cache.
//
// The CLI and the HTTP API both go through a [Runner] so that cache keys,
// logging and hook events are identical for every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, items, pipeline.Options{
//	    Constraints: mediagrid.NewConstraints(320, 569, 160, 1),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Layout == nil {
//	    // fewer than two items
//	}
//
// Zero constraint fields are filled from [mediagrid.Default], so a zero
// Options lays out for the stock 1000px canvas.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mediagrid/pkg/cache"
	mio "github.com/matzehuels/mediagrid/pkg/io"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Constraints mediagrid.Constraints `json:"constraints"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero constraint fields from [mediagrid.Default].
// Negative or non-finite values are kept so validation can reject them.
func (o *Options) SetDefaults() {
	def := mediagrid.Default()
	if o.Constraints.MaxWidth == 0 {
		o.Constraints.MaxWidth = def.MaxWidth
	}
	if o.Constraints.MaxHeight == 0 {
		o.Constraints.MaxHeight = def.MaxHeight
	}
	if o.Constraints.MinHeight == 0 {
		o.Constraints.MinHeight = def.MinHeight
	}
	if o.Constraints.Gap == 0 {
		o.Constraints.Gap = def.Gap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks the constraints.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Constraints.Validate()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MaxWidth:  o.Constraints.MaxWidth,
		MaxHeight: o.Constraints.MaxHeight,
		MinHeight: o.Constraints.MinHeight,
		Gap:       o.Constraints.Gap,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is nil when fewer than two items were given.
	Layout *mio.Layout

	// ItemsHash is the content hash of the item sizes.
	ItemsHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Layout came from the cache.
	CacheHit bool
}

// Stats contains run statistics.
type Stats struct {
	Items      int
	Rows       int
	Columns    int
	LayoutTime time.Duration
}

// ItemsHash hashes the sizes of items in order. Ids and metadata do not
// contribute, so groups with the same shapes share a cache entry.
func ItemsHash(items []mio.Item) string {
	sizes := make([][2]float64, len(items))
	for i, it := range items {
		sizes[i] = [2]float64{it.Width, it.Height}
	}
	h, _ := cache.HashJSON(sizes)
	return h
}
