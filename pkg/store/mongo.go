package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JobsCollection is the MongoDB collection holding job records.
const JobsCollection = "jobs"

// disconnectTimeout bounds Close.
const disconnectTimeout = 5 * time.Second

// MongoStore keeps job records in a MongoDB collection keyed by job id.
// It is safe for concurrent use.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// created_at index used by List.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(JobsCollection),
	}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) Save(ctx context.Context, meta *Meta) error {
	if meta == nil || meta.JobID == "" {
		return errors.New("meta without job id")
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": meta.JobID},
		meta,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save meta %s: %w", meta.JobID, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, jobID string) (*Meta, error) {
	var meta Meta
	err := s.coll.FindOne(ctx, bson.M{"_id": jobID}).Decode(&meta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meta %s: %w", jobID, err)
	}
	return &meta, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Meta, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list meta: %w", err)
	}
	var metas []*Meta
	if err := cur.All(ctx, &metas); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return metas, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
