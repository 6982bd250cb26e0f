package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a file-based session store for CLI use.
// Sessions are stored as JSON files in a config directory, one per deck.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based session store.
// If baseDir is empty, defaults to ~/.config/deckard/sessions/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "deckard", "sessions")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// sessionPath hashes the deck path into a filename, so absolute paths with
// separators map onto flat files.
func (s *FileStore) sessionPath(deckPath string) string {
	sum := sha256.Sum256([]byte(deckPath))
	return filepath.Join(s.baseDir, hex.EncodeToString(sum[:16])+".json")
}

// Get returns the saved session for a deck, or nil if none exists.
func (s *FileStore) Get(ctx context.Context, deckPath string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.sessionPath(deckPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt session files are dropped rather than surfaced.
		_ = os.Remove(path)
		return nil, nil
	}
	return &sess, nil
}

// Put saves or replaces the session for its deck path.
func (s *FileStore) Put(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return os.WriteFile(s.sessionPath(sess.DeckPath), data, 0600)
}

// Delete removes the session for a deck.
func (s *FileStore) Delete(ctx context.Context, deckPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.sessionPath(deckPath))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
