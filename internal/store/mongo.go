package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps every logical record as one document in a `records`
// collection, keyed by record name. Set is an upsert so writes follow
// last-write-wins, matching the record lifecycle of the rest of the
// system.
type MongoStore struct {
	col *mongo.Collection
}

type recordDoc struct {
	ID        string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	col := client.Database(dbName).Collection("records")
	return client, &MongoStore{col: col}, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc recordDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	doc := recordDoc{
		ID:        key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}
