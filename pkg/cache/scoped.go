package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// A render server handling several projects gives each its own cache
// namespace without touching the backend.
//
// Example usage:
//
//	// Project-specific artifact keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
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

// FigureKey generates a prefixed key for figure document caching.
func (k *ScopedKeyer) FigureKey(docHash string) string {
	return k.prefix + k.inner.FigureKey(docHash)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
