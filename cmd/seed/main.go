// Command seed loads a crop-yield spreadsheet into the yield collection.
//
// Usage:
//
//	seed crop_yield.csv --reset
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"yieldboard/dataset"
	"yieldboard/logging"
)

type seedOptions struct {
	uri        string
	database   string
	collection string
	reset      bool
	batch      int
}

func main() {
	_ = godotenv.Load()

	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Load a crop yield .csv or .xlsx file into MongoDB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.uri, "uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	cmd.Flags().StringVar(&opts.database, "db", envOr("MONGO_DB", "api6_mongo"), "database name")
	cmd.Flags().StringVar(&opts.collection, "collection", envOr("MONGO_COLLECTION", "yield_collection"), "collection name")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "drop the collection before loading")
	cmd.Flags().IntVar(&opts.batch, "batch", 1000, "documents per insert batch")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runSeed(ctx context.Context, path string, opts seedOptions) error {
	log := logging.New(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL")).With("component", "seed")

	docs, skipped, err := dataset.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	for _, s := range skipped {
		log.WithField("row", s.Row).WithField("reason", s.Reason).Debug("row skipped")
	}
	log.WithField("rows", len(docs)).WithField("skipped", len(skipped)).Info("dataset parsed")

	client, err := connect(ctx, opts.uri)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	coll := client.Database(opts.database).Collection(opts.collection)
	if opts.reset {
		if err := coll.Drop(ctx); err != nil {
			return fmt.Errorf("drop collection: %w", err)
		}
		log.Info("collection dropped")
	}

	if opts.batch < 1 {
		opts.batch = 1000
	}
	inserted := 0
	for start := 0; start < len(docs); start += opts.batch {
		end := min(start+opts.batch, len(docs))
		batch := make([]interface{}, 0, end-start)
		for _, d := range docs[start:end] {
			batch = append(batch, d)
		}
		res, err := coll.InsertMany(ctx, batch)
		if err != nil {
			return fmt.Errorf("insert batch at row %d: %w", start, err)
		}
		inserted += len(res.InsertedIDs)
	}

	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "production", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	log.WithField("inserted", inserted).Info("seed complete")
	return nil
}

// connect retries the initial ping so the seeder can start alongside mongod.
func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return client.Ping(pctx, readpref.Primary())
	}
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
