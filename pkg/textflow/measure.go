package textflow

import (
	"fmt"
	"sync"
)

// FontSpec identifies a font for width measurement. It is the cache key
// for measured widths, so two specs that render identically should
// compare equal.
type FontSpec struct {
	Family string  `json:"family"`
	Weight string  `json:"weight"`
	Size   float64 `json:"size"`
	Italic bool    `json:"italic,omitempty"`
}

// Key returns a stable string form of the spec for cache keys.
func (f FontSpec) Key() string {
	return fmt.Sprintf("%s|%s|%g|%t", f.Family, f.Weight, f.Size, f.Italic)
}

// WidthFunc reports the rendered width of text, in the same unit as the
// maxWidth passed to the wrap functions. It must be stable: the same text
// always measures the same within one computation.
type WidthFunc func(text string) float64

// Measurer reports rendered text widths for arbitrary fonts.
// Implementations may cache; results must be deterministic.
type Measurer interface {
	Measure(font FontSpec, text string) float64
}

// Bind fixes the font of a measurer into the plain width callback the
// wrap functions take.
func Bind(m Measurer, font FontSpec) WidthFunc {
	return func(text string) float64 {
		return m.Measure(font, text)
	}
}

// measureCacheLimit bounds the advisory width cache. The cache is cleared
// wholesale at the ceiling rather than evicted entry by entry; hit rates
// recover quickly because wrap passes re-measure the same short strings.
const measureCacheLimit = 2048

// CachedMeasurer memoizes an inner measurer by (font, text). It is safe
// for concurrent use and never changes results, only latency.
type CachedMeasurer struct {
	inner Measurer

	mu    sync.RWMutex
	cache map[string]float64
}

// NewCachedMeasurer wraps inner with a bounded memo table.
func NewCachedMeasurer(inner Measurer) *CachedMeasurer {
	return &CachedMeasurer{
		inner: inner,
		cache: make(map[string]float64),
	}
}

// Measure returns the cached width for (font, text), measuring through to
// the inner measurer on a miss.
func (c *CachedMeasurer) Measure(font FontSpec, text string) float64 {
	key := font.Key() + "\x00" + text

	c.mu.RLock()
	w, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return w
	}

	w = c.inner.Measure(font, text)

	c.mu.Lock()
	if len(c.cache) >= measureCacheLimit {
		c.cache = make(map[string]float64)
	}
	c.cache[key] = w
	c.mu.Unlock()

	return w
}

// Size reports the current number of cached measurements.
func (c *CachedMeasurer) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
