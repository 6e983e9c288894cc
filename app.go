package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"yieldboard/logging"
	"yieldboard/store"
)

type App struct {
	cfg     Config
	log     *logging.Logger
	mongo   *mongo.Client
	db      *mongo.Database
	yields  *mongo.Collection
	records *store.Records
	catalog *store.Catalog
	auth    *introspector

	projections       *store.Projections
	projectionCatalog *store.Catalog
}

func newApp(ctx context.Context, cfg Config, log *logging.Logger) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	db := client.Database(cfg.MongoDB)
	yields := db.Collection(cfg.MongoCollection)
	predicted := db.Collection(cfg.ProjectionColl)

	app := &App{
		cfg:     cfg,
		log:     log,
		mongo:   client,
		db:      db,
		yields:  yields,
		records: store.NewRecords(yields, log),
		catalog: store.NewCatalog(yields, log),
		auth:    newIntrospector(cfg.AuthIntrospectURL),

		projections:       store.NewProjections(predicted, log, cfg.ProjectionLimit),
		projectionCatalog: store.NewCatalogOn(predicted, log, store.ProjectionFields),
	}
	// Indexes
	if _, err := app.yields.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "production", Value: 1}}},
		{Keys: bson.D{{Key: "crop", Value: 1}, {Key: "crop_year", Value: 1}}},
	}); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
