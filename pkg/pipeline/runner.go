package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mediagrid/pkg/cache"
	mio "github.com/matzehuels/mediagrid/pkg/io"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
	"github.com/matzehuels/mediagrid/pkg/observability"
)

// keyTypeLayout labels layout entries in cache hook events.
const keyTypeLayout = "layout"

// Runner encapsulates layout execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of stored layouts. Zero means cache.TTLLayout.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute lays out items with caching and reports statistics.
func (r *Runner) Execute(ctx context.Context, items []mio.Item, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	layout, hit, err := r.GenerateWithCacheInfo(ctx, items, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Layout:    layout,
		ItemsHash: ItemsHash(items),
		CacheHit:  hit,
		Stats: Stats{
			Items:      len(items),
			LayoutTime: time.Since(start),
		},
	}
	if layout != nil {
		res.Stats.Rows = layout.RowCount()
		res.Stats.Columns = layout.ColumnCount()
	}

	r.Logger.Debug("computed layout",
		"items", res.Stats.Items,
		"rows", res.Stats.Rows,
		"columns", res.Stats.Columns,
		"cached", hit,
		"duration", res.Stats.LayoutTime)

	return res, nil
}

// GenerateWithCacheInfo lays out items and reports whether the layout came
// from the cache.
//
// Groups of fewer than two items return a nil layout and are never cached.
// Cache failures are not fatal: a failed read recomputes and a failed write
// is ignored.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, items []mio.Item, opts Options) (*mio.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if len(items) < 2 {
		return nil, false, nil
	}

	hash := ItemsHash(items)
	cacheKey := ""
	if hash != "" {
		cacheKey = r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())
	}

	// Try cache first (unless refresh requested)
	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if layout, ok := bind(data, items); ok {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return layout, true, nil
			}
			// Stale or undecodable entry, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	layout, err := r.compute(ctx, items, opts.Constraints)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if cacheKey != "" && layout != nil {
		if data, err := json.Marshal(strip(layout)); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.ttl()); err == nil {
				observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
			}
		}
	}

	return layout, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, items []mio.Item, opts Options) (*mio.Layout, error) {
	layout, _, err := r.GenerateWithCacheInfo(ctx, items, opts)
	return layout, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) compute(ctx context.Context, items []mio.Item, c mediagrid.Constraints) (*mio.Layout, error) {
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(items))

	start := time.Now()
	layout, err := mediagrid.Generate(items, c)

	rows := 0
	if layout != nil {
		rows = layout.RowCount()
	}
	hooks.OnLayoutComplete(ctx, len(items), rows, time.Since(start), err)
	return layout, err
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLLayout
}

// strip replaces each element with its size. The cache stores geometry only;
// ids and metadata come from the caller's items on every hit.
func strip(l *mio.Layout) *mediagrid.Result[mediagrid.Dimensions] {
	tiles := make([]mediagrid.Tile[mediagrid.Dimensions], len(l.Tiles))
	for i, t := range l.Tiles {
		tiles[i] = mediagrid.Tile[mediagrid.Dimensions]{
			Element:  mediagrid.Dimensions{Width: t.Element.Width, Height: t.Element.Height},
			ColSpan:  t.ColSpan,
			RowSpan:  t.RowSpan,
			StartCol: t.StartCol,
			StartRow: t.StartRow,
			Width:    t.Width,
		}
	}
	return &mediagrid.Result[mediagrid.Dimensions]{
		Width:       l.Width,
		Height:      l.Height,
		ColumnSizes: l.ColumnSizes,
		RowSizes:    l.RowSizes,
		Tiles:       tiles,
	}
}

// bind decodes a stripped layout and attaches items by position. It fails
// when the entry does not describe exactly these sizes.
func bind(data []byte, items []mio.Item) (*mio.Layout, bool) {
	var cached mediagrid.Result[mediagrid.Dimensions]
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&cached); err != nil {
		return nil, false
	}
	if len(cached.Tiles) != len(items) {
		return nil, false
	}

	tiles := make([]mediagrid.Tile[mio.Item], len(items))
	for i, t := range cached.Tiles {
		if t.Element.Width != items[i].Width || t.Element.Height != items[i].Height {
			return nil, false
		}
		tiles[i] = mediagrid.Tile[mio.Item]{
			Element:  items[i],
			ColSpan:  t.ColSpan,
			RowSpan:  t.RowSpan,
			StartCol: t.StartCol,
			StartRow: t.StartRow,
			Width:    t.Width,
		}
	}
	return &mio.Layout{
		Width:       cached.Width,
		Height:      cached.Height,
		ColumnSizes: cached.ColumnSizes,
		RowSizes:    cached.RowSizes,
		Tiles:       tiles,
	}, true
}
