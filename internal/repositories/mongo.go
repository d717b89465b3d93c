package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store is the shared MongoDB handle. It is opened once at process start,
// injected into the repositories, and closed at shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Collection returns a handle to the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes on users.email and carts/wishlists.user_id back the upsert and
// duplicate-check semantics; without them concurrent writers could race.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	type spec struct {
		coll string
		keys bson.D
		opts *options.IndexOptions
	}
	specs := []spec{
		{"users", bson.D{{Key: "email", Value: 1}}, unique},
		{"users", bson.D{{Key: "id", Value: 1}}, unique},
		{"products", bson.D{{Key: "id", Value: 1}}, unique},
		{"carts", bson.D{{Key: "user_id", Value: 1}}, unique},
		{"wishlists", bson.D{{Key: "user_id", Value: 1}}, unique},
		{"orders", bson.D{{Key: "id", Value: 1}}, unique},
		{"orders", bson.D{{Key: "user_id", Value: 1}}, nil},
		{"reviews", bson.D{{Key: "product_id", Value: 1}}, nil},
		{"blogs", bson.D{{Key: "id", Value: 1}}, unique},
	}
	for _, sp := range specs {
		model := mongo.IndexModel{Keys: sp.keys, Options: sp.opts}
		if _, err := s.db.Collection(sp.coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", sp.coll, err)
		}
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
