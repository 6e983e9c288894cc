package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yieldboard/logging"
	"yieldboard/models"
)

// Collection is the subset of *mongo.Collection the store needs.
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// Records reads and writes yield records.
type Records struct {
	coll Collection
	log  *logging.Logger
}

func NewRecords(coll Collection, log *logging.Logger) *Records {
	return &Records{coll: coll, log: log.With("component", "store.records")}
}

// query builds the filter and reports list criteria that were dropped
// because every entry was null.
func (s *Records) query(c Criteria) bson.M {
	q, ignored := c.Query()
	if len(ignored) > 0 {
		s.log.WithField("fields", ignored).Warn("all values filtered: list criteria held only nulls and were ignored")
	}
	return q
}

// Find returns every record matching c.
func (s *Records) Find(ctx context.Context, c Criteria) ([]models.YieldRecord, error) {
	return s.find(ctx, s.query(c))
}

// Page returns one page of matching records together with the total match count.
func (s *Records) Page(ctx context.Context, c Criteria, page, size int) ([]models.YieldRecord, int64, error) {
	q := s.query(c)

	total, err := s.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count yields: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))
	out, err := s.find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Records) find(ctx context.Context, q bson.M, opts ...*options.FindOptions) ([]models.YieldRecord, error) {
	cur, err := s.coll.Find(ctx, q, opts...)
	if err != nil {
		return nil, fmt.Errorf("fetch yields: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode yields: %w", err)
	}

	out := make([]models.YieldRecord, len(docs))
	for i, d := range docs {
		out[i] = models.RecordFromDocument(d)
	}
	return out, nil
}

// Insert stores a validated record and returns its id.
func (s *Records) Insert(ctx context.Context, doc models.YieldDoc) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert yield: %w", err)
	}
	return models.RecordFromDocument(bson.M{"_id": res.InsertedID}).ID, nil
}

// Update replaces the fields of the record identified by crop and year.
// It returns the number of modified documents.
func (s *Records) Update(ctx context.Context, crop string, year int, doc models.YieldDoc) (int64, error) {
	if err := doc.Validate(); err != nil {
		return 0, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"crop": crop, "crop_year": year},
		bson.M{"$set": doc},
	)
	if err != nil {
		return 0, fmt.Errorf("update yield: %w", err)
	}
	if res.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return res.ModifiedCount, nil
}
