package library

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/halvard/deckard/pkg/errors"
)

// MongoStore is a MongoDB-backed library for hosted deployments where
// several server instances share one deck collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "deckard"
	Collection string // defaults to "decks"
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "deckard"
	}
	if cfg.Collection == "" {
		cfg.Collection = "decks"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// List returns all decks in the collection, sorted by ID.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "title": 1, "updated_at": 1}).
		SetSort(bson.M{"_id": 1})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var infos []Info
	for cur.Next(ctx) {
		var d Deck
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		infos = append(infos, Info{ID: d.ID, Title: d.Title, UpdatedAt: d.UpdatedAt})
	}
	return infos, cur.Err()
}

// Get returns a deck by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Deck, error) {
	if err := errors.ValidateDeckID(id); err != nil {
		return nil, err
	}

	var d Deck
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeDeckNotFound, "deck not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Put stores or replaces a deck.
func (s *MongoStore) Put(ctx context.Context, d *Deck) error {
	if err := errors.ValidateDeckID(d.ID); err != nil {
		return err
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d, options.Replace().SetUpsert(true))
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
