package main

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yieldboard/logging"
	"yieldboard/store"
)

// fakeYields stands in for the Mongo yield collection.
type fakeYields struct {
	docs       []bson.M
	distinct   map[string][]interface{}
	lastFilter interface{}
	lastOpts   []*options.FindOptions
	inserted   []interface{}
	matched    int64
}

func (f *fakeYields) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.lastFilter = filter
	f.lastOpts = opts
	docs := make([]interface{}, len(f.docs))
	for i, d := range f.docs {
		docs[i] = d
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakeYields) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return int64(len(f.docs)), nil
}

func (f *fakeYields) Distinct(ctx context.Context, field string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error) {
	return f.distinct[field], nil
}

func (f *fakeYields) InsertOne(ctx context.Context, doc interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.inserted = append(f.inserted, doc)
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func (f *fakeYields) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: f.matched, ModifiedCount: f.matched}, nil
}

func newTestApp(t *testing.T, coll *fakeYields, cfg Config) *App {
	t.Helper()
	log := logging.Discard()
	if cfg.DashboardLimit == 0 {
		cfg.DashboardLimit = 500
	}
	if cfg.ProjectionLimit == 0 {
		cfg.ProjectionLimit = 300
	}
	return &App{
		cfg:     cfg,
		log:     log,
		records: store.NewRecords(coll, log),
		catalog: store.NewCatalog(coll, log),
		auth:    newIntrospector(cfg.AuthIntrospectURL),

		projections:       store.NewProjections(coll, log, cfg.ProjectionLimit),
		projectionCatalog: store.NewCatalogOn(coll, log, store.ProjectionFields),
	}
}

func seedDocs() []bson.M {
	return []bson.M{
		{"_id": primitive.NewObjectID(), "crop": "Wheat", "crop_year": int32(2024), "season": "Spring", "state": "A", "area": 10.0, "production": 100.0},
		{"_id": primitive.NewObjectID(), "crop": "Corn", "crop_year": int32(2024), "season": "Spring", "state": "B", "area": 5.0, "production": int32(100)},
		{"_id": primitive.NewObjectID(), "crop": "Rice", "crop_year": int32(2023), "season": "Whole Year", "state": "B", "area": 4.0, "production": 400.0},
	}
}
