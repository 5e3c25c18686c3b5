package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aircli/internal/config"
	"aircli/internal/dataset"
)

const testCSV = "SensorID,ZipCode,Station,Brand,TimeOfDay,Concentration\n" +
	"s1,10001,A,PA-II,Morning,5.0\n" +
	"s2,10001,A,PA-II,Morning,7.0\n" +
	"s3,10002,B,PA-II,Evening,3.0\n"

func newTestServer(t *testing.T, load bool) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	cfg.Server.RateLimit.Enabled = false
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Data.Dir, "air_data.csv"), []byte(testCSV), 0o644))

	ds, err := dataset.New("Air Quality Report", nil, dataset.DefaultConfig())
	require.NoError(t, err)
	if load {
		_, err = ds.LoadFile(cfg.DataFilePath())
		require.NoError(t, err)
	}

	service := NewDatasetService(ds, &cfg, nil)
	srv := httptest.NewServer(NewRouter(service, &cfg, nil))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out interface{}) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetStatus(t *testing.T) {
	srv := newTestServer(t, true)

	var status Status
	code := getJSON(t, srv.URL+"/api/dataset", &status)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Air Quality Report", status.Header)
	assert.True(t, status.Loaded)
	assert.Equal(t, 3, status.Count)
}

func TestLoadDataset(t *testing.T) {
	srv := newTestServer(t, false)

	var resp LoadResponse
	code := postJSON(t, srv.URL+"/api/dataset/load", `{"file":"air_data.csv"}`, &resp)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Records)
}

func TestLoadDataset_Invalid(t *testing.T) {
	srv := newTestServer(t, false)

	tests := []struct {
		name string
		body string
		code int
	}{
		{
			name: "path traversal rejected",
			body: `{"file":"../secrets.csv"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "missing file name",
			body: `{}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown format",
			body: `{"file":"air_data.csv","format":"parquet"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "absent file",
			body: `{"file":"nope.csv"}`,
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := postJSON(t, srv.URL+"/api/dataset/load", tt.body, nil)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestGetLabels(t *testing.T) {
	srv := newTestServer(t, true)

	var resp LabelsResponse
	code := getJSON(t, srv.URL+"/api/labels/zip_code", &resp)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "zip_code", resp.Category)
	assert.Equal(t, []string{"10001", "10002"}, resp.Labels)
}

func TestGetLabels_BadCategory(t *testing.T) {
	srv := newTestServer(t, true)

	code := getJSON(t, srv.URL+"/api/labels/weekday", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetLabels_EmptyDataset(t *testing.T) {
	srv := newTestServer(t, false)

	code := getJSON(t, srv.URL+"/api/labels/zip_code", nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestToggleLabel(t *testing.T) {
	srv := newTestServer(t, true)

	var resp LabelsResponse
	code := postJSON(t, srv.URL+"/api/labels/zip_code/10002/toggle", "", &resp)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"10001"}, resp.Labels)

	// Unknown label is a 404.
	code = postJSON(t, srv.URL+"/api/labels/zip_code/99999/toggle", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetCrossTabStatistics(t *testing.T) {
	srv := newTestServer(t, true)

	var summary struct {
		Min   float64 `json:"min"`
		Avg   float64 `json:"avg"`
		Max   float64 `json:"max"`
		Count int     `json:"count"`
	}
	code := getJSON(t, srv.URL+"/api/stats/cross?zip=10001&time=Morning", &summary)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5.0, summary.Min)
	assert.InDelta(t, 6.0, summary.Avg, 1e-9)
	assert.Equal(t, 7.0, summary.Max)
	assert.Equal(t, 2, summary.Count)
}

func TestGetCrossTabStatistics_Errors(t *testing.T) {
	srv := newTestServer(t, true)

	// No matching readings for the pair.
	code := getJSON(t, srv.URL+"/api/stats/cross?zip=10002&time=Morning", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Missing query parameters.
	code = getJSON(t, srv.URL+"/api/stats/cross?zip=10002", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetTableStatistics(t *testing.T) {
	srv := newTestServer(t, true)

	// Deactivate zip 10002, then the Evening field row has nothing left.
	code := postJSON(t, srv.URL+"/api/labels/zip_code/10002/toggle", "", nil)
	require.Equal(t, http.StatusOK, code)

	code = getJSON(t, srv.URL+"/api/stats/field/time_of_day/Evening", nil)
	assert.Equal(t, http.StatusNotFound, code)

	var summary struct {
		Avg float64 `json:"avg"`
	}
	code = getJSON(t, srv.URL+"/api/stats/field/time_of_day/Morning", &summary)
	assert.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 6.0, summary.Avg, 1e-9)
}

func TestGetCrossTableReport(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/api/reports/cross?stat=avg")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "Morning Evening")
	assert.Contains(t, text, "10001      6.00     N/A")
}

func TestGetFieldTableReport(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/api/reports/field/zip_code")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "The following data are from sensors matching these criteria:")
	assert.Contains(t, text, "Minimum Average Maximum")
	assert.Contains(t, text, "10001      5.00    6.00    7.00")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, false)

	var body map[string]string
	code := getJSON(t, srv.URL+"/healthz", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, true)

	// Exercise a counter, then scrape.
	code := getJSON(t, srv.URL+"/api/stats/cross?zip=10001&time=Morning", nil)
	require.Equal(t, http.StatusOK, code)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
