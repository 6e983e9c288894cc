package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection serves canned documents and records what it was asked.
type fakeCollection struct {
	docs        []bson.M
	distinct    map[string][]interface{}
	distinctErr map[string]error
	findErr     error

	lastFilter  interface{}
	lastOptions []*options.FindOptions
	inserted    []interface{}
	updates     []bson.M
	matched     int64
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.lastFilter = filter
	f.lastOptions = opts
	if f.findErr != nil {
		return nil, f.findErr
	}
	docs := make([]interface{}, len(f.docs))
	for i, d := range f.docs {
		docs[i] = d
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakeCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return int64(len(f.docs)), nil
}

func (f *fakeCollection) Distinct(ctx context.Context, field string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error) {
	if err := f.distinctErr[field]; err != nil {
		return nil, err
	}
	return f.distinct[field], nil
}

func (f *fakeCollection) InsertOne(ctx context.Context, doc interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.inserted = append(f.inserted, doc)
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func (f *fakeCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	m, ok := filter.(bson.M)
	if !ok {
		return nil, errors.New("unexpected filter type")
	}
	f.updates = append(f.updates, m)
	return &mongo.UpdateResult{MatchedCount: f.matched, ModifiedCount: f.matched}, nil
}
