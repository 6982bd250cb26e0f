package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/nav"
)

func testCursor() nav.Cursor {
	return nav.Cursor{Path: deck.Path{1, 0}, Fragment: 2}
}

func TestNewSession(t *testing.T) {
	sess := New("/talks/demo.deck", "abc123", testCursor())
	if sess.ID == "" {
		t.Error("expected a generated session ID")
	}
	if sess.DeckPath != "/talks/demo.deck" || sess.DeckHash != "abc123" {
		t.Errorf("unexpected session %+v", sess)
	}
	if sess.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
	if !sess.Cursor.Equal(testCursor()) {
		t.Errorf("unexpected cursor %s", sess.Cursor)
	}
}

func TestSessionMatches(t *testing.T) {
	sess := New("/talks/demo.deck", "abc123", testCursor())
	if !sess.Matches("abc123") {
		t.Error("expected match for same hash")
	}
	if sess.Matches("def456") {
		t.Error("expected mismatch for edited deck")
	}
}

// storeTest exercises the Store contract against any implementation.
func storeTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Get(ctx, "/talks/none.deck")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unsaved deck, got %+v", got)
	}

	sess := New("/talks/demo.deck", "abc123", testCursor())
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err = store.Get(ctx, "/talks/demo.deck")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected saved session")
	}
	if got.ID != sess.ID || !got.Cursor.Equal(sess.Cursor) {
		t.Errorf("round trip changed the session: %+v vs %+v", got, sess)
	}

	// Put for the same deck replaces.
	sess2 := New("/talks/demo.deck", "def456", nav.Cursor{Path: deck.Path{0}})
	if err := store.Put(ctx, sess2); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err = store.Get(ctx, "/talks/demo.deck")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DeckHash != "def456" {
		t.Errorf("expected replacement, got %+v", got)
	}

	if err := store.Delete(ctx, "/talks/demo.deck"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = store.Get(ctx, "/talks/demo.deck")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}

	if err := store.Delete(ctx, "/talks/demo.deck"); err != nil {
		t.Errorf("deleting a missing session should not fail: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeTest(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	storeTest(t, store)
}

func TestFileStoreCreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "sessions")
	if _, err := NewFileStore(base); err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected base dir to exist, got %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	sess := New("/talks/demo.deck", "abc123", testCursor())
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := os.WriteFile(store.sessionPath("/talks/demo.deck"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Corrupt files resolve as no session and are cleaned up.
	got, err := store.Get(ctx, "/talks/demo.deck")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for corrupt session, got %+v", got)
	}
	if _, err := os.Stat(store.sessionPath("/talks/demo.deck")); !os.IsNotExist(err) {
		t.Error("corrupt session file should be removed")
	}
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New("/talks/demo.deck", "abc123", testCursor())
	if err := store.Put(ctx, sess); err != nil {
		t.Fatal(err)
	}
	sess.DeckHash = "mutated"

	got, err := store.Get(ctx, "/talks/demo.deck")
	if err != nil {
		t.Fatal(err)
	}
	if got.DeckHash != "abc123" {
		t.Error("store should hold a copy, not the caller's pointer")
	}
}
