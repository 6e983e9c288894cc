package store

import (
	"context"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yieldboard/logging"
)

// Finder is the read side of a collection.
type Finder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// Projections reads predicted yields from yield_predict_collection. The
// documents have no fixed schema, so they are returned as stored with the
// id rendered as hex.
type Projections struct {
	coll  Finder
	log   *logging.Logger
	limit int
}

func NewProjections(coll Finder, log *logging.Logger, limit int) *Projections {
	return &Projections{coll: coll, log: log.With("component", "store.projections"), limit: limit}
}

// Find returns at most limit documents matching c.
func (p *Projections) Find(ctx context.Context, c Criteria) ([]bson.M, error) {
	q, ignored := c.QueryOn(ProjectionFields)
	if len(ignored) > 0 {
		p.log.WithField("fields", ignored).Warn("all values filtered: list criteria held only nulls and were ignored")
	}

	opts := options.Find().SetLimit(int64(p.limit))
	cur, err := p.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch projections: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projections: %w", err)
	}
	if docs == nil {
		docs = []bson.M{}
	}
	if len(docs) > p.limit {
		docs = docs[:p.limit]
	}
	for _, d := range docs {
		clean(d)
	}
	return docs, nil
}

// clean makes a stored document JSON-safe.
func clean(d bson.M) {
	for k, v := range d {
		switch t := v.(type) {
		case primitive.ObjectID:
			d[k] = t.Hex()
		case float64:
			if math.IsNaN(t) || math.IsInf(t, 0) {
				d[k] = nil
			}
		case bson.M:
			clean(t)
		}
	}
}
