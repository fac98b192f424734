package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/auspexlabs/imager/pkg/pipeline"
)

func testServer() *Server {
	return NewServer("127.0.0.1:0", log.NewWithOptions(io.Discard, log.Options{}))
}

func postChart(t *testing.T, body string) (*httptest.ResponseRecorder, pipeline.Response) {
	t.Helper()
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/generate-chart", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp pipeline.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, resp
}

func TestGenerateChartSingle(t *testing.T) {
	rec, resp := postChart(t, `{
		"chart_type": "single",
		"planets": [{"name": "Sun", "longitude": 0}, {"name": "Moon", "longitude": 200}],
		"date": "2024-03-01T12:00:00Z"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Error)
	}
	if resp.ChartType != "single" {
		t.Errorf("chart_type = %q, want single", resp.ChartType)
	}
	if !strings.Contains(resp.SVG, "<svg ") || !strings.Contains(resp.SVG, "</svg>") {
		t.Error("svg field does not contain a document")
	}
	if resp.Metadata == nil || resp.Metadata.GeneratedAt != "2024-03-01T12:00:00Z" {
		t.Errorf("metadata = %+v, date not passed through", resp.Metadata)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}
}

func TestGenerateChartUnknownType(t *testing.T) {
	rec, resp := postChart(t, `{"chart_type": "horary"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp.Success {
		t.Error("success = true for unknown chart type")
	}
	if resp.SVG != "" {
		t.Error("no markup should be produced")
	}
	if !strings.Contains(resp.Error, "horary") {
		t.Errorf("error = %q, should name the offending type", resp.Error)
	}
}

func TestGenerateChartEmptyBody(t *testing.T) {
	rec, resp := postChart(t, "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("envelope = %+v, want failure with message", resp)
	}
}

func TestGenerateChartMissingDataset(t *testing.T) {
	// A valid chart type with no dataset is a server-side error: the
	// envelope carries diagnostic detail and the status is 500.
	rec, resp := postChart(t, `{"chart_type": "single"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if resp.Success {
		t.Error("success = true for missing dataset")
	}
	if resp.Detail == "" {
		t.Error("server errors should carry diagnostic detail")
	}
}

func TestHealth(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || health.Service != "imager" {
		t.Errorf("health = %+v", health)
	}
}

func TestLegacyAliasAccepted(t *testing.T) {
	rec, resp := postChart(t, `{
		"chart_type": "transit",
		"natal_planets": [{"name": "Sun", "longitude": 10}],
		"transit_planets": [{"name": "Moon", "longitude": 100}]
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, resp.Error)
	}
	if !strings.Contains(resp.SVG, "transit-indicator") {
		t.Error("dual-asymmetric markup missing transit indicators")
	}
}
