package store

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"yieldboard/models"
)

func decodeCriteria(t *testing.T, body string) Criteria {
	t.Helper()
	var c Criteria
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	return c
}

func TestCriteriaQuery(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    bson.M
		ignored []string
	}{
		{name: "no criteria", body: `{}`, want: bson.M{}},
		{name: "explicit nulls", body: `{"crop_year":null,"state":null}`, want: bson.M{}},
		{
			name: "scalars",
			body: `{"crop_year":2020,"season":"Spring","crop":"Rice","state":"Acre"}`,
			want: bson.M{"crop_year": 2020, "season": "Spring", "crop": "Rice", "state": "Acre"},
		},
		{
			name: "lists drop nulls",
			body: `{"crop_year":[2019,null,2020],"crop":["Rice",null]}`,
			want: bson.M{
				"crop_year": bson.M{"$in": []int{2019, 2020}},
				"crop":      bson.M{"$in": []string{"Rice"}},
			},
		},
		{
			name:    "all-null and empty lists are ignored",
			body:    `{"season":[null,null],"state":[],"crop":"Rice"}`,
			want:    bson.M{"crop": "Rice"},
			ignored: []string{"season", "state"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ignored := decodeCriteria(t, tt.body).Query()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ignored, ignored)
		})
	}
}

func TestCriteriaRejectsWrongTypes(t *testing.T) {
	var c Criteria
	assert.Error(t, json.Unmarshal([]byte(`{"crop_year":"2020"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"crop_year":[2020,"x"]}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"season":7}`), &c))
}

func TestCriteriaMatch(t *testing.T) {
	rice2020 := models.YieldRecord{Crop: "Rice", CropYear: 2020, Season: "Spring", State: "Acre"}
	wheat2021 := models.YieldRecord{Crop: "Wheat", CropYear: 2021, Season: "Winter", State: "Bahia"}

	tests := []struct {
		name     string
		criteria Criteria
		rice     bool
		wheat    bool
	}{
		{name: "empty", criteria: Criteria{}, rice: true, wheat: true},
		{name: "scalar year", criteria: Criteria{Year: Is(2020)}, rice: true},
		{name: "list crop", criteria: Criteria{Crop: In("Wheat", "Soy")}, wheat: true},
		{name: "all fields", criteria: Criteria{Year: In(2020, 2021), State: Is("Bahia"), Season: Is("Winter")}, wheat: true},
		{name: "all-null list", criteria: decodeCriteria(t, `{"state":[null]}`), rice: true, wheat: true},
		{name: "no match", criteria: Criteria{Season: Is("Summer")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rice, tt.criteria.Match(rice2020))
			assert.Equal(t, tt.wheat, tt.criteria.Match(wheat2021))
		})
	}
}

func TestCriteriaFromQuery(t *testing.T) {
	c, err := CriteriaFromQuery(url.Values{
		"crop_year": {"2019", "2020"},
		"state":     {"Acre"},
	})
	require.NoError(t, err)

	q, ignored := c.Query()
	assert.Empty(t, ignored)
	assert.Equal(t, bson.M{
		"crop_year": bson.M{"$in": []int{2019, 2020}},
		"state":     "Acre",
	}, q)

	_, err = CriteriaFromQuery(url.Values{"crop_year": {"last"}})
	assert.Error(t, err)
}

func TestCriterionJSONRoundTrip(t *testing.T) {
	c := Criteria{Year: In(2020), Crop: Is("Rice")}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"crop_year":[2020],"season":null,"crop":"Rice","state":null}`, string(data))
}

func TestCriteriaQueryOnProjectionFields(t *testing.T) {
	c := Criteria{Year: In(2025, 2026), Season: Is("Spring"), State: In[string]()}
	q, ignored := c.QueryOn(ProjectionFields)

	assert.Equal(t, bson.M{
		"Crop_year": bson.M{"$in": []int{2025, 2026}},
		"Season":    "Spring",
	}, q)
	assert.Equal(t, []string{"State"}, ignored)
}
