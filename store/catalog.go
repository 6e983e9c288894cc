package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yieldboard/logging"
	"yieldboard/models"
)

// Distincter is the part of a collection the catalog reads.
type Distincter interface {
	Distinct(ctx context.Context, fieldName string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error)
}

// Catalog lists the selectable values of the filterable fields across the
// whole collection.
type Catalog struct {
	coll   Distincter
	log    *logging.Logger
	fields Fields
}

func NewCatalog(coll Distincter, log *logging.Logger) *Catalog {
	return NewCatalogOn(coll, log, YieldFields)
}

// NewCatalogOn builds a catalog over a collection keyed by fields.
func NewCatalogOn(coll Distincter, log *logging.Logger, fields Fields) *Catalog {
	return &Catalog{coll: coll, log: log.With("component", "store.catalog"), fields: fields}
}

// Options never fails: a field whose lookup errors comes back empty.
func (c *Catalog) Options(ctx context.Context) models.FilterOptions {
	return models.FilterOptions{
		CropYears: c.values(ctx, c.fields.Year),
		Seasons:   c.values(ctx, c.fields.Season),
		Crops:     c.values(ctx, c.fields.Crop),
		States:    c.values(ctx, c.fields.State),
	}
}

func (c *Catalog) values(ctx context.Context, field string) []string {
	raw, err := c.coll.Distinct(ctx, field, bson.D{})
	if err != nil {
		c.log.WithError(err).WithField("field", field).Warn("distinct values unavailable")
		return []string{}
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == nil {
			continue
		}
		out = append(out, scalarString(v))
	}
	sort.Strings(out)
	return out
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
