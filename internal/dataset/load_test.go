package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

func TestLoad(t *testing.T) {
	d := newDataSet(t)

	count, err := d.Load(strings.NewReader(specCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, d.Count())
	assert.True(t, d.Loaded())
}

func TestLoad_HeaderOnly(t *testing.T) {
	d := newDataSet(t)

	// A source with no data rows parses, but the dataset stays empty.
	count, err := d.Load(strings.NewReader(csvHeader))
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, d.Loaded())

	_, err = d.Labels(domain.CategoryZipCode)
	assert.True(t, apperrors.IsEmptyDataset(err))
}

func TestLoad_ParseFailures(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "empty source",
			csv:  "",
		},
		{
			name: "non numeric concentration",
			csv:  csvHeader + "s1,10001,A,PA-II,Morning,bad\n",
		},
		{
			name: "too few fields",
			csv:  csvHeader + "s1,10001,Morning\n",
		},
		{
			name: "failure mid file",
			csv: csvHeader +
				"s1,10001,A,PA-II,Morning,5.0\n" +
				"s2,10001,A,PA-II,Morning,oops\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDataSet(t)
			_, err := d.Load(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.True(t, apperrors.IsParsing(err))
			assert.False(t, d.Loaded())
		})
	}
}

func TestLoad_FailedReloadKeepsPreviousState(t *testing.T) {
	d := loadedDataSet(t, specCSV)
	require.NoError(t, d.ToggleLabel(domain.CategoryZipCode, "10002"))

	_, err := d.Load(strings.NewReader(csvHeader + "s9,10009,A,PA-II,Night,not-a-number\n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsParsing(err))

	// Records, labels and filter state all survive the failed reload.
	assert.Equal(t, 3, d.Count())
	labels, err := d.Labels(domain.CategoryZipCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"10001", "10002"}, labels)
	active, err := d.ActiveLabels(domain.CategoryZipCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"10001"}, active)
}

func TestLoad_ReloadRebuildsRegistries(t *testing.T) {
	d := loadedDataSet(t, specCSV)
	require.NoError(t, d.ToggleLabel(domain.CategoryZipCode, "10001"))
	require.NoError(t, d.ToggleLabel(domain.CategoryTimeOfDay, "Evening"))

	count, err := d.Load(strings.NewReader(csvHeader +
		"s1,94040,A,PA-II,Night,1.5\n" +
		"s2,10001,A,PA-II,Morning,2.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Registries are rebuilt, not merged, and everything is active again.
	labels, err := d.Labels(domain.CategoryZipCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"94040", "10001"}, labels)
	active, err := d.ActiveLabels(domain.CategoryZipCode)
	require.NoError(t, err)
	assert.Equal(t, labels, active)

	times, err := d.ActiveLabels(domain.CategoryTimeOfDay)
	require.NoError(t, err)
	assert.Equal(t, []string{"Night", "Morning"}, times)
}

func TestLoad_ExtraFieldsTolerated(t *testing.T) {
	d := newDataSet(t)
	count, err := d.Load(strings.NewReader(csvHeader +
		"s1,10001,A,PA-II,Morning,5.0,extra,fields\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "air_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(specCSV), 0o644))

	d := newDataSet(t)
	count, err := d.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestLoadFile_Missing(t *testing.T) {
	d := newDataSet(t)
	_, err := d.LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
	assert.False(t, d.Loaded())
}
