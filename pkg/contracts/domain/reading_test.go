package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Other(t *testing.T) {
	assert.Equal(t, CategoryTimeOfDay, CategoryZipCode.Other())
	assert.Equal(t, CategoryZipCode, CategoryTimeOfDay.Other())
}

func TestReading_Field(t *testing.T) {
	r := Reading{ZipCode: "10001", TimeOfDay: "Morning", Concentration: 5.0}

	assert.Equal(t, "10001", r.Field(CategoryZipCode))
	assert.Equal(t, "Morning", r.Field(CategoryTimeOfDay))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "zip_code", want: CategoryZipCode},
		{input: "zip", want: CategoryZipCode},
		{input: "ZIP", want: CategoryZipCode},
		{input: "time_of_day", want: CategoryTimeOfDay},
		{input: " time ", want: CategoryTimeOfDay},
		{input: "weekday", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		input   string
		want    Stat
		wantErr bool
	}{
		{input: "min", want: StatMin},
		{input: "Minimum", want: StatMin},
		{input: "avg", want: StatAvg},
		{input: "mean", want: StatAvg},
		{input: "MAX", want: StatMax},
		{input: "median", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummary_Value(t *testing.T) {
	s := Summary{Min: 1, Avg: 2, Max: 3, Count: 4}

	assert.Equal(t, 1.0, s.Value(StatMin))
	assert.Equal(t, 2.0, s.Value(StatAvg))
	assert.Equal(t, 3.0, s.Value(StatMax))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "zip_code", CategoryZipCode.String())
	assert.Equal(t, "time_of_day", CategoryTimeOfDay.String())
	assert.Equal(t, "min", StatMin.String())
	assert.Equal(t, "avg", StatAvg.String())
	assert.Equal(t, "max", StatMax.String())
}
