// Package cache provides pluggable byte caches for rendered deck artifacts.
//
// Rendering a deck to export formats (HTML, SVG outlines, JSON) is pure in
// the deck content and the render options, so results are cached under keys
// derived from the content hash plus the options. Three backends are
// provided:
//   - FileCache: XDG cache directory, used by the CLI
//   - RedisCache: shared cache for serve deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so that the CLI and the server agree on the
// key schema, and so a server can namespace tenants with a ScopedKeyer.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that distinguish cached artifacts
// produced from the same deck.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme"`
	Width  int    `json:"width"`
}

// Keyer generates cache keys for the render pipeline.
type Keyer interface {
	// DeckKey generates a key for a parsed deck, from the source text hash.
	DeckKey(sourceHash string) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(deckHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key schema shared by CLI and server.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DeckKey generates a key for a parsed deck.
func (k *DefaultKeyer) DeckKey(sourceHash string) string {
	return "deck:" + sourceHash
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(deckHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", deckHash, opts)
}
