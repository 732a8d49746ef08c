// internal/app/store/kv/mongo.go
package kv

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo stores one document per key in a "documents" collection, using
// the key as _id and a version field for conditional replacement.
type Mongo struct {
	client *mongo.Client
	c      *mongo.Collection
}

type mongoDoc struct {
	Key     string `bson:"_id"`
	Value   string `bson:"value"`
	Version int64  `bson:"version"`
}

// NewMongo creates a Store backed by the given Mongo database.
func NewMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	return &Mongo{client: client, c: db.Collection("documents")}
}

func (m *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	doc, found, err := m.find(ctx, key)
	return doc.Value, found, err
}

func (m *Mongo) GetVersioned(ctx context.Context, key string) (Versioned, bool, error) {
	doc, found, err := m.find(ctx, key)
	return Versioned{Value: doc.Value, Version: doc.Version}, found, err
}

func (m *Mongo) find(ctx context.Context, key string) (mongoDoc, bool, error) {
	var doc mongoDoc
	err := m.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return mongoDoc{}, false, nil
	}
	if err != nil {
		return mongoDoc{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return doc, true, nil
}

func (m *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := m.c.UpdateByID(ctx, key,
		bson.M{
			"$set": bson.M{"value": value},
			"$inc": bson.M{"version": int64(1)},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (m *Mongo) SetIfVersion(ctx context.Context, key, value string, version int64) error {
	if version == 0 {
		_, err := m.c.InsertOne(ctx, mongoDoc{Key: key, Value: value, Version: 1})
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionMismatch
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	res, err := m.c.ReplaceOne(ctx,
		bson.M{"_id": key, "version": version},
		mongoDoc{Key: key, Value: value, Version: version + 1},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := m.c.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
