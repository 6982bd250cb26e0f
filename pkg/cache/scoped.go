package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// A deck server hosting several users gives each one a separate cache
// namespace so private decks never collide with public ones.
//
// Example usage:
//
//	// User-specific keys for private decks
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for public decks
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

// DeckKey generates a prefixed key for a parsed deck.
func (k *ScopedKeyer) DeckKey(sourceHash string) string {
	return k.prefix + k.inner.DeckKey(sourceHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(deckHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(deckHash, opts)
}
