package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"yieldboard/models"
)

// Criterion constrains one record field. It is either unset, a single value
// or a list of values; list entries may be null.
type Criterion[T int | string] struct {
	values []*T
	list   bool
	set    bool
}

// Is constrains a field to exactly v.
func Is[T int | string](v T) Criterion[T] {
	return Criterion[T]{values: []*T{&v}, set: true}
}

// In constrains a field to any of vs.
func In[T int | string](vs ...T) Criterion[T] {
	vs = append([]T(nil), vs...)
	values := make([]*T, len(vs))
	for i := range vs {
		values[i] = &vs[i]
	}
	return Criterion[T]{values: values, list: true, set: true}
}

// UnmarshalJSON accepts null, a scalar or an array whose entries may be null.
func (c *Criterion[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Criterion[T]{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var values []*T
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*c = Criterion[T]{values: values, list: true, set: true}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Is(v)
	return nil
}

func (c Criterion[T]) MarshalJSON() ([]byte, error) {
	switch {
	case !c.set:
		return []byte("null"), nil
	case c.list:
		return json.Marshal(c.values)
	}
	return json.Marshal(*c.values[0])
}

// nonNull returns the list entries that are not null.
func (c Criterion[T]) nonNull() []T {
	out := make([]T, 0, len(c.values))
	for _, v := range c.values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// condition returns the query value for the field. constrained is false
// when the field places no restriction; ignored reports a list that was
// given but held only nulls.
func (c Criterion[T]) condition() (cond any, constrained, ignored bool) {
	if !c.set {
		return nil, false, false
	}
	if !c.list {
		return *c.values[0], true, false
	}
	valid := c.nonNull()
	if len(valid) == 0 {
		return nil, false, true
	}
	return bson.M{"$in": valid}, true, false
}

func (c Criterion[T]) matches(v T) bool {
	if !c.set {
		return true
	}
	if !c.list {
		return *c.values[0] == v
	}
	valid := c.nonNull()
	if len(valid) == 0 {
		return true
	}
	for _, want := range valid {
		if want == v {
			return true
		}
	}
	return false
}

// Criteria selects yield records by year, season, crop and state.
type Criteria struct {
	Year   Criterion[int]    `json:"crop_year"`
	Season Criterion[string] `json:"season"`
	Crop   Criterion[string] `json:"crop"`
	State  Criterion[string] `json:"state"`
}

// Fields names the document keys the four criteria apply to.
type Fields struct {
	Year, Season, Crop, State string
}

var (
	// YieldFields are the keys of yield_collection.
	YieldFields = Fields{Year: "crop_year", Season: "season", Crop: "crop", State: "state"}
	// ProjectionFields are the capitalised keys of yield_predict_collection.
	ProjectionFields = Fields{Year: "Crop_year", Season: "Season", Crop: "Crop", State: "State"}
)

// Query builds the filter document for yield_collection. A list criterion
// with no non-null entries adds no constraint; its field name is returned
// in ignored.
func (c Criteria) Query() (query bson.M, ignored []string) {
	return c.QueryOn(YieldFields)
}

// QueryOn is Query against a collection with different key names.
func (c Criteria) QueryOn(f Fields) (query bson.M, ignored []string) {
	query = bson.M{}
	add := func(field string, cond any, constrained, skipped bool) {
		if constrained {
			query[field] = cond
		}
		if skipped {
			ignored = append(ignored, field)
		}
	}

	cond, ok, skip := c.Year.condition()
	add(f.Year, cond, ok, skip)
	cond, ok, skip = c.Season.condition()
	add(f.Season, cond, ok, skip)
	cond, ok, skip = c.Crop.condition()
	add(f.Crop, cond, ok, skip)
	cond, ok, skip = c.State.condition()
	add(f.State, cond, ok, skip)

	return query, ignored
}

// Match applies the same rules as Query to an in-memory record.
func (c Criteria) Match(r models.YieldRecord) bool {
	return c.Year.matches(r.CropYear) &&
		c.Season.matches(r.Season) &&
		c.Crop.matches(r.Crop) &&
		c.State.matches(r.State)
}

// CriteriaFromQuery reads criteria from URL query parameters. A repeated
// parameter becomes a list; crop_year values must be integers.
func CriteriaFromQuery(values url.Values) (Criteria, error) {
	var c Criteria

	if years := values["crop_year"]; len(years) > 0 {
		parsed := make([]int, 0, len(years))
		for _, y := range years {
			n, err := strconv.Atoi(strings.TrimSpace(y))
			if err != nil {
				return Criteria{}, fmt.Errorf("crop_year must be an integer, got %q", y)
			}
			parsed = append(parsed, n)
		}
		c.Year = fromValues(parsed)
	}

	c.Season = fromValues(values["season"])
	c.Crop = fromValues(values["crop"])
	c.State = fromValues(values["state"])
	return c, nil
}

func fromValues[T int | string](vs []T) Criterion[T] {
	switch len(vs) {
	case 0:
		return Criterion[T]{}
	case 1:
		return Is(vs[0])
	}
	return In(vs...)
}

// DecodeProjectionCriteria reads a projection filter body. It differs from
// decoding Criteria only in crop_year: list entries may be integers or
// digit strings, and entries of any other kind are dropped. A scalar
// crop_year must still be an integer.
func DecodeProjectionCriteria(r io.Reader) (Criteria, error) {
	var body struct {
		Year   json.RawMessage   `json:"crop_year"`
		Season Criterion[string] `json:"season"`
		Crop   Criterion[string] `json:"crop"`
		State  Criterion[string] `json:"state"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return Criteria{}, err
	}

	c := Criteria{Season: body.Season, Crop: body.Crop, State: body.State}
	raw := bytes.TrimSpace(body.Year)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return c, nil
	}
	if raw[0] != '[' {
		if err := json.Unmarshal(raw, &c.Year); err != nil {
			return Criteria{}, fmt.Errorf("crop_year must be an integer or a list: %w", err)
		}
		return c, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Criteria{}, fmt.Errorf("crop_year: %w", err)
	}
	years := make([]*int, 0, len(entries))
	for _, e := range entries {
		if y, ok := looseYear(e); ok {
			years = append(years, &y)
		}
	}
	c.Year = Criterion[int]{values: years, list: true, set: true}
	return c, nil
}

func looseYear(raw json.RawMessage) (int, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
