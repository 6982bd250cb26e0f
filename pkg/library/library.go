// Package library stores decks for serve mode.
//
// A library maps stable deck IDs to outline markup sources. The server
// lists and loads decks through the Store interface; the CLI can publish a
// local file into a library with Put. Two backends are provided:
//   - DirStore: a directory of .deck files, IDs derived from filenames
//   - MongoStore: a MongoDB collection for hosted deployments
package library

import (
	"context"
	"time"
)

// Deck is a stored deck with its raw outline markup source.
type Deck struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Source    []byte    `bson:"source" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Info is a deck listing entry; the source is omitted.
type Info struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a deck library backend.
type Store interface {
	// List returns all decks in the library, sorted by ID.
	List(ctx context.Context) ([]Info, error)

	// Get returns a deck by ID. A missing deck fails with
	// errors.ErrCodeDeckNotFound.
	Get(ctx context.Context, id string) (*Deck, error)

	// Put stores or replaces a deck.
	Put(ctx context.Context, d *Deck) error

	// Close releases backend resources.
	Close() error
}
