// Package session persists presenter positions between runs.
//
// When a presentation quits, the cursor is saved keyed by the deck path;
// reopening the same deck resumes at that position. Sessions remember the
// hash of the deck text they were saved against, so a deck that changed on
// disk starts from the first slide instead of restoring a cursor that may
// no longer resolve.
//
// Two stores are provided: FileStore for the CLI (one JSON file per deck
// under the user config directory) and MemoryStore for tests and the
// embedded server.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/halvard/deckard/pkg/nav"
)

// Session is one saved presenter position.
type Session struct {
	ID        string     `json:"id"`
	DeckPath  string     `json:"deck_path"`
	DeckHash  string     `json:"deck_hash"`
	Cursor    nav.Cursor `json:"cursor"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// New creates a session for a deck at the given position.
func New(deckPath, deckHash string, cursor nav.Cursor) *Session {
	return &Session{
		ID:        uuid.NewString(),
		DeckPath:  deckPath,
		DeckHash:  deckHash,
		Cursor:    cursor.Clone(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Matches reports whether the session was saved against the same deck text.
// A stale session (deck edited since) should be discarded by the caller.
func (s *Session) Matches(deckHash string) bool {
	return s.DeckHash == deckHash
}

// Store persists sessions keyed by deck path.
type Store interface {
	// Get returns the session for a deck, or nil if none is saved.
	Get(ctx context.Context, deckPath string) (*Session, error)

	// Put saves or replaces the session for its deck path.
	Put(ctx context.Context, s *Session) error

	// Delete removes the session for a deck. Missing sessions are not an
	// error.
	Delete(ctx context.Context, deckPath string) error
}
