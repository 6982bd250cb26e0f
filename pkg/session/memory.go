package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory session store for tests and embedded use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get returns the saved session for a deck, or nil if none exists.
func (s *MemoryStore) Get(ctx context.Context, deckPath string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[deckPath]
	if !ok {
		return nil, nil
	}
	copy := *sess
	return &copy, nil
}

// Put saves or replaces the session for its deck path.
func (s *MemoryStore) Put(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *sess
	s.sessions[sess.DeckPath] = &copy
	return nil
}

// Delete removes the session for a deck.
func (s *MemoryStore) Delete(ctx context.Context, deckPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, deckPath)
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
