package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yieldboard/models"
)

func TestTotalProduction(t *testing.T) {
	tests := []struct {
		name    string
		records []models.YieldRecord
		want    float64
	}{
		{name: "empty", records: nil, want: 0},
		{name: "reference scenario", records: wheatAndCorn(), want: 200},
		{
			name: "skips non-numeric and missing after the first record",
			records: records(
				rec{production: n(10)},
				rec{production: models.Invalid()},
				rec{},
				rec{production: n(2.5)},
			),
			want: 12.5,
		},
		{
			name:    "first record non-numeric is not a schema error",
			records: records(rec{production: models.Invalid()}, rec{production: n(4)}),
			want:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalProduction(tt.records)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTotalProductionMissingField(t *testing.T) {
	_, err := TotalProduction(records(rec{crop: "Rice"}, rec{crop: "Rice"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "production", verr.Field)
}

func TestSummarizePropagatesValidation(t *testing.T) {
	_, err := Summarize(records(rec{crop: "Rice"}))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	in := append(wheatAndCorn(), records(
		rec{crop: "Rice", year: 2023, season: models.SeasonWholeYear, state: "C", area: n(8), production: n(400)},
		rec{crop: "Rice", year: 2023, season: models.SeasonWinter, state: "C", area: models.Invalid(), production: n(12)},
	)...)
	snapshot := append([]models.YieldRecord(nil), in...)

	first, err := Summarize(in)
	require.NoError(t, err)
	second, err := Summarize(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, in, "input must not be mutated")
}
