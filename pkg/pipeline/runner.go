package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridwerk/gridwerk/pkg/cache"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/observability"
	"github.com/gridwerk/gridwerk/pkg/render/sheet"
)

// Runner encapsulates pipeline execution with caching.
// CLI, server, and worker all use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete calc → layout → render pipeline with caching.
// The layout stage runs only when the options carry document blocks.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Calc
	calcStart := time.Now()
	observability.Pipeline().OnCalcStart(ctx, opts.Format, opts.Orientation)
	g, calcHit, err := r.CalcWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnCalcComplete(ctx, opts.Format, opts.Orientation, 0, time.Since(calcStart), err)
		return nil, fmt.Errorf("calc: %w", err)
	}
	observability.Pipeline().OnCalcComplete(ctx, opts.Format, opts.Orientation, g.Cols*g.Rows, time.Since(calcStart), nil)
	result.Grid = g
	result.Stats.CalcTime = time.Since(calcStart)
	result.CacheInfo.CalcHit = calcHit

	// Compute grid hash for cache keys and API responses
	if gridData, err := json.Marshal(g); err == nil {
		result.GridHash = cache.Hash(gridData)
	}

	r.Logger.Info("computed grid",
		"format", opts.Format,
		"modules", fmt.Sprintf("%dx%d", g.Cols, g.Rows),
		"duration", result.Stats.CalcTime)

	// Stage 2: Layout
	if len(opts.Blocks) > 0 {
		layoutStart := time.Now()
		observability.Pipeline().OnLayoutStart(ctx, len(opts.Blocks))
		overlay, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
		if err != nil {
			observability.Pipeline().OnLayoutComplete(ctx, len(opts.Blocks), 0, time.Since(layoutStart), err)
			return nil, fmt.Errorf("layout: %w", err)
		}
		observability.Pipeline().OnLayoutComplete(ctx, len(overlay.Blocks), countLines(overlay), time.Since(layoutStart), nil)
		result.Overlay = overlay
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.Stats.BlockCount = len(overlay.Blocks)
		result.Stats.LineCount = countLines(overlay)
		result.CacheInfo.LayoutHit = layoutHit

		r.Logger.Info("assembled overlay",
			"blocks", result.Stats.BlockCount,
			"lines", result.Stats.LineCount,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	s := sheet.Sheet{Settings: opts.GridSettings(), Grid: g}
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, result.Overlay, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), nil)
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CalcWithCacheInfo computes the grid with caching and returns cache hit info.
func (r *Runner) CalcWithCacheInfo(ctx context.Context, opts Options) (*grid.Result, bool, error) {
	if err := opts.ValidateForCalc(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.GridKey(opts.Format, opts.Orientation, opts.GridKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached grid.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "grid")
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "grid")

	g, err := Calc(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result. A refresh run overwrites the stale entry.
	if data, err := json.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGrid)
		observability.Cache().OnCacheSet(ctx, "grid", len(data))
	}

	return g, false, nil // Cache miss
}

// Calc is a convenience wrapper that calls CalcWithCacheInfo and discards the cache hit info.
func (r *Runner) Calc(ctx context.Context, opts Options) (*grid.Result, error) {
	g, _, err := r.CalcWithCacheInfo(ctx, opts)
	return g, err
}

// LayoutWithCacheInfo assembles the overlay with caching and returns cache hit info.
// The cache key covers the grid, the serialized blocks, and the auto-fit flag.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *grid.Result, opts Options) (*sheet.Overlay, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	gridData, err := json.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize grid for cache key: %w", err)
	}
	blocksData, err := json.Marshal(opts.Blocks)
	if err != nil {
		return nil, false, fmt.Errorf("serialize blocks for cache key: %w", err)
	}
	cacheKey := r.Keyer.SheetKey(cache.Hash(gridData), opts.SheetKeyOpts(cache.Hash(blocksData)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached sheet.Overlay
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "sheet")
				return &cached, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "sheet")

	overlay, err := Assemble(g, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(overlay); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSheet)
		observability.Cache().OnCacheSet(ctx, "sheet", len(data))
	}

	return overlay, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *grid.Result, opts Options) (*sheet.Overlay, error) {
	overlay, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return overlay, err
}

// renderInput is the serialized form hashed into artifact cache keys.
type renderInput struct {
	Settings grid.Settings  `json:"settings"`
	Grid     *grid.Result   `json:"grid"`
	Overlay  *sheet.Overlay `json:"overlay,omitempty"`
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// A nil overlay renders the bare grid sheet.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s sheet.Sheet, overlay *sheet.Overlay, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	payload, err := json.Marshal(renderInput{Settings: s.Settings, Grid: s.Grid, Overlay: overlay})
	if err != nil {
		return nil, false, fmt.Errorf("serialize sheet for cache key: %w", err)
	}
	sheetHash := cache.Hash(payload)

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sheetHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(s, overlay, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sheetHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s sheet.Sheet, overlay *sheet.Overlay, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, overlay, opts)
	return artifacts, err
}

// countLines sums the placed lines across all overlay blocks.
func countLines(overlay *sheet.Overlay) int {
	if overlay == nil {
		return 0
	}
	n := 0
	for _, b := range overlay.Blocks {
		n += len(b.Lines)
	}
	return n
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
