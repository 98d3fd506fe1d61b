package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind the HTTP server where different users or
// documents need separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for private documents
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for anonymous grid requests
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GridKey generates a prefixed key for grid geometry caching.
func (k *ScopedKeyer) GridKey(format, orientation string, opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(format, orientation, opts)
}

// SheetKey generates a prefixed key for sheet caching.
func (k *ScopedKeyer) SheetKey(gridHash string, opts SheetKeyOpts) string {
	return k.prefix + k.inner.SheetKey(gridHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sheetHash, opts)
}

// PlanKey generates a prefixed key for a reflow plan.
func (k *ScopedKeyer) PlanKey(signature string) string {
	return k.prefix + k.inner.PlanKey(signature)
}
