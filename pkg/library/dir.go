package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halvard/deckard/pkg/errors"
	"github.com/halvard/deckard/pkg/parse"
)

// deckExt is the outline markup file extension in a directory library.
const deckExt = ".deck"

// DirStore serves decks from a directory of .deck files. The deck ID is the
// filename without extension; "talks/mvvm.deck" is deck "mvvm".
type DirStore struct {
	dir string
}

// NewDirStore creates a directory-backed library. The directory must exist.
func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "library directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "library path is not a directory: %s", dir)
	}
	return &DirStore{dir: dir}, nil
}

// List returns all decks in the directory, sorted by ID. Files that fail to
// parse are listed with an empty title rather than hidden.
func (s *DirStore) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), deckExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), deckExt)
		info := Info{ID: id}
		if fi, err := entry.Info(); err == nil {
			info.UpdatedAt = fi.ModTime().UTC()
		}
		if doc, err := parse.ParseFile(filepath.Join(s.dir, entry.Name())); err == nil {
			info.Title = doc.Title
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// Get returns a deck by ID.
func (s *DirStore) Get(ctx context.Context, id string) (*Deck, error) {
	if err := errors.ValidateDeckID(id); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, id+deckExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeDeckNotFound, "deck not found: %s", id)
		}
		return nil, err
	}

	d := &Deck{ID: id, Source: data}
	if fi, err := os.Stat(path); err == nil {
		d.UpdatedAt = fi.ModTime().UTC()
	}
	if doc, err := parse.Parse(data); err == nil {
		d.Title = doc.Title
	}
	return d, nil
}

// Put stores or replaces a deck file.
func (s *DirStore) Put(ctx context.Context, d *Deck) error {
	if err := errors.ValidateDeckID(d.ID); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, d.ID+deckExt), d.Source, 0644)
}

// Close does nothing for a directory store.
func (s *DirStore) Close() error {
	return nil
}

// Ensure DirStore implements Store.
var _ Store = (*DirStore)(nil)
