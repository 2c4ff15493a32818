package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rpametrics/spreadsheet"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

func newServer() *Server {
	src := spreadsheet.Source{DataFile: "../testdata/runs.csv", SavingsFile: "../testdata/savings.csv"}
	return New(src, zerolog.Nop())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// query decodes a JSON response and evaluates a jsonpath expression on it.
func query(t *testing.T, rec *httptest.ResponseRecorder, path string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json response %q: %v", rec.Body.String(), err)
	}
	got, err := jsonpath.Get(path, v)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	return got
}

func TestDashboardAPI(t *testing.T) {
	s := newServer()
	tests := []struct {
		target string
		path   string
		want   any
	}{
		{"/api/dashboard", "$.kpis.total_executions", 1170.0},
		{"/api/dashboard", "$.kpis.active_processes", 6.0},
		{"/api/dashboard", "$.kpis.cost_savings.amount", "8580.5"},
		{"/api/dashboard", "$.period", "monthly"},
		{"/api/dashboard", "$.source", "../testdata/runs.csv"},
		{"/api/dashboard", "$.figures[0].id", "executions-trend"},
		{"/api/dashboard", "$.trend[0].period", "2023-Nov"},
		{"/api/dashboard?area=HR", "$.kpis.total_executions", 150.0},
		{"/api/dashboard?year=2023", "$.kpis.total_executions", 250.0},
		{"/api/dashboard?year=2023,2024&month=jan", "$.kpis.total_executions", 170.0},
		{"/api/dashboard?month=January&month=Feb", "$.kpis.total_executions", 320.0},
		{"/api/dashboard?period=quarterly", "$.trend[1].period", "2024 Q1"},
		{"/api/dashboard?process=Nothing", "$.kpis.success_rate", 0.0},
	}
	for _, test := range tests {
		rec := get(t, s, test.target)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200: %s", test.target, rec.Code, rec.Body)
			continue
		}
		if got := query(t, rec, test.path); got != test.want {
			t.Errorf("GET %s %s = %v, want %v", test.target, test.path, got, test.want)
		}
	}
}

func TestDashboardAPI_Figures(t *testing.T) {
	rec := get(t, newServer(), "/api/dashboard")
	figs, ok := query(t, rec, "$.figures").([]any)
	if !ok || len(figs) != 20 {
		t.Errorf("got %d figures, want 20", len(figs))
	}
}

func TestBadRequest(t *testing.T) {
	s := newServer()
	for _, target := range []string{
		"/api/dashboard?period=hourly",
		"/api/dashboard?year=last",
		"/api/options?month=Smarch",
		"/charts/executions-trend.png?period=x",
	} {
		rec := get(t, s, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", target, rec.Code)
			continue
		}
		if msg, _ := query(t, rec, "$.error").(string); msg == "" {
			t.Errorf("GET %s has no error message", target)
		}
	}
}

func TestOptionsAPI(t *testing.T) {
	rec := get(t, newServer(), "/api/options?area=Finance&year=2023")
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"years":          []any{2023.0, 2024.0},
		"months":         []any{"Nov", "Dec"},
		"business_areas": []any{"All", "Finance", "HR", "IT"},
		"processes":      []any{"All", "Invoice Matching", "Vendor Onboarding"},
		"machines":       []any{"All", "BOT-01", "BOT-02", "BOT-03", "BOT-04"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadError(t *testing.T) {
	s := New(spreadsheet.Source{DataFile: "../testdata/missing.csv"}, zerolog.Nop())

	rec := get(t, s, "/api/dashboard")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("GET /api/dashboard status = %d, want 500", rec.Code)
	}
	if msg := query(t, rec, "$.error").(string); !strings.Contains(msg, "data file not found") {
		t.Errorf("error = %q", msg)
	}

	rec = get(t, s, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("GET / status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `role="alert"`) || !strings.Contains(body, "missing.csv") {
		t.Errorf("GET / does not show the error:\n%s", body)
	}
}

func TestIndex(t *testing.T) {
	rec := get(t, newServer(), "/?area=Finance&year=2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d: %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`id="fig-executions-trend"`,
		`id="fig-savings-heatmap"`,
		`<option selected>Finance</option>`,
		`<option selected>2024</option>`,
		`href="/export.csv?area=Finance&amp;period=monthly&amp;year=2024"`,
		"cdn.plot.ly",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("GET / has no %q", want)
		}
	}
}

func TestExportCSV(t *testing.T) {
	rec := get(t, newServer(), "/export.csv?year=2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "rpa_metrics_") || !strings.HasSuffix(cd, `.csv"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1+7 {
		t.Errorf("export has %d records, want header + 7 runs", len(records))
	}
}

func TestExportXLSX(t *testing.T) {
	rec := get(t, newServer(), "/export.xlsx?area=IT")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(spreadsheet.ExportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+2 {
		t.Errorf("export has %d rows, want header + 2 runs", len(rows))
	}
}

func TestChartPNG(t *testing.T) {
	s := newServer()
	rec := get(t, s, "/charts/executions-trend.png")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("GET executions-trend.png = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	tests := map[string]int{
		"/charts/process-treemap.png":              http.StatusNotImplemented,
		"/charts/nope.png":                         http.StatusNotFound,
		"/charts/executions-trend.png?area=Nobody": http.StatusNotFound,
	}
	for target, want := range tests {
		if rec := get(t, s, target); rec.Code != want {
			t.Errorf("GET %s status = %d, want %d", target, rec.Code, want)
		}
	}
}

func TestReport(t *testing.T) {
	rec := get(t, newServer(), "/report?period=yearly")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"<h1>RPA Metrics Summary</h1>", "<h1>Yearly Trend</h1>", "<h1>Functional Area Savings</h1>"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("report has no %q", want)
		}
	}
}

func TestHealthAndRequestID(t *testing.T) {
	s := newServer()
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK || rec.Header().Get(RequestIDHeader) == "" {
		t.Errorf("GET /healthz = %d, request id %q", rec.Code, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want the incoming one", got)
	}
}

func TestAccessLog(t *testing.T) {
	var logs bytes.Buffer
	s := New(spreadsheet.Source{DataFile: "../testdata/runs.csv"}, zerolog.New(&logs))
	get(t, s, "/api/options?area=HR")

	// loaders log through the request logger too, the access line is last.
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	var line map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &line); err != nil {
		t.Fatalf("access log is not a json line: %q", logs.String())
	}
	for k, want := range map[string]any{"path": "/api/options", "query": "area=HR", "status": 200.0, "message": "request"} {
		if line[k] != want {
			t.Errorf("log %s = %v, want %v", k, line[k], want)
		}
	}
	if line["request_id"] == nil {
		t.Error("log has no request_id")
	}
}
