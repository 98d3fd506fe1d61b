// Package cache provides caching interfaces and implementations for the
// generation pipeline. Three layers are cached independently: computed
// grids, assembled sheets, and rendered artifacts, plus reflow plans for
// the interactive editor.
package cache

import (
	"context"
	"time"
)

// TTL values for each cache layer. Grids and sheets are pure functions of
// their inputs, so the TTL mostly bounds disk usage rather than staleness.
const (
	// TTLGrid is the cache duration for computed grid geometry.
	TTLGrid = 7 * 24 * time.Hour

	// TTLSheet is the cache duration for assembled sheets.
	TTLSheet = 24 * time.Hour

	// TTLArtifact is the cache duration for rendered artifacts.
	TTLArtifact = 24 * time.Hour

	// TTLPlan is the cache duration for reflow plans. Plans are consulted
	// on every column-count change in the editor, so entries are small and
	// short-lived.
	TTLPlan = time.Hour
)

// Cache is the interface for caching computed results.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. Returns (data, true, nil) on hit,
	// (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GridKeyOpts are the calculator settings that shape a grid's geometry.
type GridKeyOpts struct {
	MarginMethod     int
	GridCols         int
	GridRows         int
	Baseline         float64
	BaselineMultiple float64
	GutterMultiple   float64
	TypeScale        string
	CustomMargins    []float64
}

// SheetKeyOpts are the layout options applied when assembling a sheet
// from a computed grid. ContentHash covers the serialized blocks.
type SheetKeyOpts struct {
	ContentHash string
	AutoFit     bool
}

// ArtifactKeyOpts are the rendering options applied when producing an
// artifact from an assembled sheet.
type ArtifactKeyOpts struct {
	Format         string
	Title          string
	ShowBaselines  bool
	ShowTypeLadder bool
	PNGScale       float64
}

// Keyer generates cache keys for each pipeline layer.
// Implementations must produce deterministic keys: identical inputs must
// always map to identical keys.
type Keyer interface {
	// GridKey generates a key for grid geometry caching.
	GridKey(format, orientation string, opts GridKeyOpts) string

	// SheetKey generates a key for sheet caching, derived from the
	// content hash of the grid it was assembled on.
	SheetKey(gridHash string, opts SheetKeyOpts) string

	// ArtifactKey generates a key for artifact caching, derived from the
	// content hash of the sheet it renders.
	ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string

	// PlanKey generates a key for a reflow plan from its canonical
	// signature.
	PlanKey(signature string) string
}

// DefaultKeyer is the standard Keyer implementation.
// Keys are content-addressed: each layer's key hashes the identifying
// inputs, so equal work always lands on the same entry.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GridKey generates a key for grid geometry caching.
func (k *DefaultKeyer) GridKey(format, orientation string, opts GridKeyOpts) string {
	return hashKey("grid", format, orientation, opts)
}

// SheetKey generates a key for sheet caching.
func (k *DefaultKeyer) SheetKey(gridHash string, opts SheetKeyOpts) string {
	return hashKey("sheet", gridHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sheetHash, opts)
}

// PlanKey generates a key for a reflow plan. The signature is already a
// canonical content hash, so it is prefixed rather than re-hashed.
func (k *DefaultKeyer) PlanKey(signature string) string {
	return "plan:" + signature
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
