// Package mongo stores quest progress in a MongoDB collection.
//
// Each completed quest is one document {_id: questID, completed_at: time}.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/questgraph/pkg/progress"
)

// Collection is the collection name used by Open.
const Collection = "progress"

type record struct {
	ID          string    `bson:"_id"`
	CompletedAt time.Time `bson:"completed_at"`
}

// Store implements progress.Store on a MongoDB collection.
type Store struct {
	coll   *mongo.Collection
	client *mongo.Client // set when Open created the client
}

var _ progress.Store = (*Store)(nil)

// New creates a Store on an existing collection.
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Open connects to uri and uses the progress collection of database.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("progress: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("progress: ping mongo: %w", err)
	}
	return &Store{coll: client.Database(database).Collection(Collection), client: client}, nil
}

func (s *Store) Load(ctx context.Context) (progress.Set, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "completed_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("progress: find: %w", err)
	}
	defer cur.Close(ctx)

	set := progress.NewSet()
	for cur.Next(ctx) {
		var r record
		if err := cur.Decode(&r); err != nil {
			return nil, fmt.Errorf("progress: decode: %w", err)
		}
		set.Add(r.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("progress: cursor: %w", err)
	}
	return set, nil
}

func (s *Store) Mark(ctx context.Context, id string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "completed_at", Value: time.Now().UTC()}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("progress: mark %s: %w", id, err)
	}
	return nil
}

func (s *Store) Unmark(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("progress: unmark %s: %w", id, err)
	}
	return nil
}

func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("progress: toggle %s: %w", id, err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}
	_, err = s.coll.InsertOne(ctx, record{ID: id, CompletedAt: time.Now().UTC()})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("progress: toggle %s: %w", id, err)
	}
	return true, nil
}

// Drop removes the collection.
func (s *Store) Drop(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

// Close disconnects the client if Open created it.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return err
	}
	return nil
}
