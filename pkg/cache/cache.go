// Package cache provides pluggable artifact caching for rendered
// figures. Backends share one interface: a file cache for CLI usage, a
// Redis cache for server deployments, and a null cache that disables
// caching entirely. Keys are derived from content hashes so identical
// figure documents rendered with identical options hit the same entry.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Fetch when an item is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Default TTLs per entry type. Figure documents are tiny and re-parsed
// cheaply; artifacts are the expensive entries worth keeping longer.
const (
	TTLFigure   = 1 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the
	// key was present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Fetch retrieves a value, converting absence into ErrCacheMiss for
// callers that prefer an error-shaped miss.
func Fetch(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// RenderKeyOpts are the render options that participate in artifact
// cache keys. Two renders with the same figure hash but different
// options must never collide.
type RenderKeyOpts struct {
	Format    string
	Width     float64
	Height    float64
	DPI       int
	ShareAxes bool
}

// Keyer generates cache keys for the figure pipeline.
type Keyer interface {
	// FigureKey keys a parsed figure document by its content hash.
	FigureKey(docHash string) string

	// ArtifactKey keys one encoded output of a figure render.
	ArtifactKey(docHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FigureKey generates a key for figure document caching.
func (k *DefaultKeyer) FigureKey(docHash string) string {
	return hashKey("figure", docHash)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
