package store

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"yieldboard/logging"
)

func TestProjectionsFind(t *testing.T) {
	id := primitive.NewObjectID()
	coll := &fakeCollection{docs: []bson.M{
		{"_id": id, "Crop": "Corn", "Crop_year": int32(2025), "Season": "Spring", "State": "Iowa", "Production": math.NaN()},
		{"_id": primitive.NewObjectID(), "Crop": "Corn", "Crop_year": int32(2026)},
		{"_id": primitive.NewObjectID(), "Crop": "Corn", "Crop_year": int32(2027)},
	}}
	p := NewProjections(coll, logging.Discard(), 2)

	got, err := p.Find(context.Background(), Criteria{Crop: Is("Corn"), State: In("Iowa", "Texas")})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"Crop": "Corn", "State": bson.M{"$in": []string{"Iowa", "Texas"}}}, coll.lastFilter)
	require.Len(t, coll.lastOptions, 1)
	assert.Equal(t, int64(2), *coll.lastOptions[0].Limit)

	require.Len(t, got, 2)
	assert.Equal(t, id.Hex(), got[0]["_id"])
	assert.Nil(t, got[0]["Production"])
	assert.Equal(t, int32(2025), got[0]["Crop_year"])
}

func TestProjectionsFindError(t *testing.T) {
	p := NewProjections(&fakeCollection{findErr: errors.New("boom")}, logging.Discard(), 300)
	_, err := p.Find(context.Background(), Criteria{})
	assert.ErrorContains(t, err, "fetch projections")
}

func TestDecodeProjectionCriteria(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bson.M
	}{
		{"empty", `{}`, bson.M{}},
		{"scalar year", `{"crop_year":2025}`, bson.M{"Crop_year": 2025}},
		{"mixed year list", `{"crop_year":[2025,"2026",null,"soon",20.5]}`, bson.M{"Crop_year": bson.M{"$in": []int{2025, 2026}}}},
		{"no usable years", `{"crop_year":["soon"],"season":["Spring",null]}`, bson.M{"Season": bson.M{"$in": []string{"Spring"}}}},
		{"strings", `{"crop":"Corn","state":["Iowa"]}`, bson.M{"Crop": "Corn", "State": bson.M{"$in": []string{"Iowa"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := DecodeProjectionCriteria(strings.NewReader(tt.body))
			require.NoError(t, err)
			q, _ := c.QueryOn(ProjectionFields)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestDecodeProjectionCriteriaRejects(t *testing.T) {
	for _, body := range []string{`{"crop_year":"2025"}`, `{"crop":5}`, `[]`, `not json`} {
		_, err := DecodeProjectionCriteria(strings.NewReader(body))
		assert.Error(t, err, body)
	}
}
