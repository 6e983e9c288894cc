package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Season vocabulary used by the yield collection.
const (
	SeasonSpring    = "Spring"
	SeasonSummer    = "Summer"
	SeasonAutumn    = "Autumn"
	SeasonWinter    = "Winter"
	SeasonWholeYear = "Whole Year"
)

// FixedSeasons are the four per-season buckets, in chart order.
var FixedSeasons = []string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// IsKnownSeason reports whether s belongs to the collection's season vocabulary.
func IsKnownSeason(s string) bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonWholeYear:
		return true
	}
	return false
}

// NumberState tells whether a record field was absent, present but unusable, or numeric.
type NumberState uint8

const (
	Missing NumberState = iota
	NonNumeric
	Numeric
)

// Number is an optional numeric field read from the store.
// The zero value is Missing.
type Number struct {
	value float64
	state NumberState
}

// Num returns a numeric Number. NaN and infinities are not usable numbers
// and come back as Invalid.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid()
	}
	return Number{value: v, state: Numeric}
}

// Invalid returns a Number for a field that exists but holds no usable number.
func Invalid() Number { return Number{state: NonNumeric} }

func (n Number) State() NumberState { return n.state }

// Float returns the value and true only when the field is numeric.
func (n Number) Float() (float64, bool) {
	if n.state != Numeric {
		return 0, false
	}
	return n.value, true
}

// Or returns the value when numeric, def otherwise.
func (n Number) Or(def float64) float64 {
	if v, ok := n.Float(); ok {
		return v
	}
	return def
}

// IsZero lets `omitzero` drop Missing fields from JSON output.
func (n Number) IsZero() bool { return n.state == Missing }

func (n Number) MarshalJSON() ([]byte, error) {
	if n.state != Numeric {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil || string(data) == "null" {
		*n = Invalid()
		return nil
	}
	*n = Num(v)
	return nil
}

// YieldRecord is one crop harvest observation as read from yield_collection.
type YieldRecord struct {
	ID             string `json:"_id"`
	Crop           string `json:"crop"`
	CropYear       int    `json:"crop_year"`
	Season         string `json:"season"`
	State          string `json:"state"`
	Area           Number `json:"area,omitzero"`
	Production     Number `json:"production,omitzero"`
	AnnualRainfall Number `json:"annual_rainfall,omitzero"`
	Fertilizer     Number `json:"fertilizer,omitzero"`
	Pesticide      Number `json:"pesticide,omitzero"`
	Yield          Number `json:"yield,omitzero"`
}

// RecordFromDocument converts a raw store document into a YieldRecord.
// Numeric fields keep track of whether the key was absent or non-numeric.
func RecordFromDocument(doc bson.M) YieldRecord {
	return YieldRecord{
		ID:             idString(doc["_id"]),
		Crop:           stringField(doc, "crop"),
		CropYear:       yearField(doc, "crop_year"),
		Season:         stringField(doc, "season"),
		State:          stringField(doc, "state"),
		Area:           numberField(doc, "area"),
		Production:     numberField(doc, "production"),
		AnnualRainfall: numberField(doc, "annual_rainfall"),
		Fertilizer:     numberField(doc, "fertilizer"),
		Pesticide:      numberField(doc, "pesticide"),
		Yield:          numberField(doc, "yield"),
	}
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func stringField(doc bson.M, key string) string {
	s, _ := doc[key].(string)
	return s
}

func yearField(doc bson.M, key string) int {
	switch v := doc[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func numberField(doc bson.M, key string) Number {
	raw, ok := doc[key]
	if !ok {
		return Number{}
	}
	switch v := raw.(type) {
	case float64:
		return Num(v)
	case int32:
		return Num(float64(v))
	case int64:
		return Num(float64(v))
	case int:
		return Num(float64(v))
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return Invalid()
		}
		return Num(f)
	}
	return Invalid()
}

// YieldDoc is the write shape of a yield record. All fields are required.
type YieldDoc struct {
	Crop           string  `bson:"crop"            json:"crop"`
	CropYear       int     `bson:"crop_year"       json:"crop_year"`
	Season         string  `bson:"season"          json:"season"`
	State          string  `bson:"state"           json:"state"`
	Area           float64 `bson:"area"            json:"area"`
	Production     float64 `bson:"production"      json:"production"`
	AnnualRainfall float64 `bson:"annual_rainfall" json:"annual_rainfall"`
	Fertilizer     float64 `bson:"fertilizer"      json:"fertilizer"`
	Pesticide      float64 `bson:"pesticide"       json:"pesticide"`
	Yield          float64 `bson:"yield"           json:"yield"`
}

// Validate checks the constraints the collection validator enforces.
func (d YieldDoc) Validate() error {
	switch {
	case strings.TrimSpace(d.Crop) == "":
		return fmt.Errorf("crop is required")
	case strings.TrimSpace(d.State) == "":
		return fmt.Errorf("state is required")
	case d.CropYear <= 0:
		return fmt.Errorf("crop_year must be positive")
	case !IsKnownSeason(d.Season):
		return fmt.Errorf("season %q is not one of Spring, Summer, Autumn, Winter, Whole Year", d.Season)
	case d.Area < 0:
		return fmt.Errorf("area must not be negative")
	}
	return nil
}
