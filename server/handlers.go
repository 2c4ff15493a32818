package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/etnz/rpametrics"
	"github.com/etnz/rpametrics/chart"
	"github.com/etnz/rpametrics/renderer"
	"github.com/etnz/rpametrics/spreadsheet"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templates embed.FS

var funcs = template.FuncMap{
	"hasYear":  func(f rpametrics.Filter, y int) bool { return slices.Contains(f.Years, y) },
	"hasMonth": func(f rpametrics.Filter, m string) bool { return slices.Contains(f.Months, m) },
	"fixed":    func(d decimal.Decimal, places int32) string { return d.StringFixed(places) },
	"money":    func(d *rpametrics.Dashboard, t rpametrics.Totals) string { return d.Money(t).String() },
}

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html"))

// badRequest marks errors caused by the query parameters.
type badRequest struct{ error }

func (e badRequest) Unwrap() error { return e.error }

func status(err error) int {
	if errors.As(err, new(badRequest)) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// view is the result of one dashboard interaction.
type view struct {
	Dataset   *rpametrics.Dataset
	Dashboard *rpametrics.Dashboard
}

func (s *Server) view(r *http.Request) (*view, error) {
	f, p, err := ParseQuery(r.URL.Query())
	if err != nil {
		return nil, badRequest{err}
	}
	ds, err := s.loader.Load(r.Context())
	if err != nil {
		return nil, err
	}
	return &view{Dataset: ds, Dashboard: rpametrics.NewDashboard(ds, f, p, s.opts...)}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	code := status(err)
	if code >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// page is the data of the dashboard template.
type page struct {
	Error     string
	Dataset   *rpametrics.Dataset
	Dashboard *rpametrics.Dashboard
	Figures   []chart.Figure
	Periods   []rpametrics.Period
	Query     template.URL
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, code int, data page) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("cannot render dashboard")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		if code := status(err); code >= http.StatusInternalServerError {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("cannot load dashboard")
		}
		s.render(w, r, status(err), page{Error: err.Error(), Periods: rpametrics.Periods})
		return
	}
	d := v.Dashboard
	s.render(w, r, http.StatusOK, page{
		Dataset:   v.Dataset,
		Dashboard: d,
		Figures:   chart.Build(d),
		Periods:   rpametrics.Periods,
		Query:     template.URL(Query(d.Filter, d.Period).Encode()),
	})
}

type dashboardResponse struct {
	*rpametrics.Dashboard
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loaded_at"`
	Warnings []string       `json:"warnings,omitempty"`
	Figures  []chart.Figure `json:"figures"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.jsonError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Dashboard: v.Dashboard,
		Source:    v.Dataset.Source,
		LoadedAt:  v.Dataset.LoadedAt,
		Warnings:  v.Dataset.Warnings,
		Figures:   chart.Build(v.Dashboard),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.jsonError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v.Dashboard.Options)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.jsonError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	fig, ok := chart.Find(chart.Build(v.Dashboard), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown chart " + id})
		return
	}
	var buf bytes.Buffer
	switch err := chart.RenderPNG(&buf, fig); {
	case errors.Is(err, chart.ErrNoData):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, chart.ErrUnsupported):
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": err.Error()})
		return
	case err != nil:
		s.jsonError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := spreadsheet.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		s.jsonError(w, r, badRequest{err})
		return
	}
	v, err := s.view(r)
	if err != nil {
		s.jsonError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, format, v.Dashboard.Rows); err != nil {
		s.jsonError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName(time.Now())+`"`)
	w.Write(buf.Bytes())
	zerolog.Ctx(r.Context()).Debug().Str("format", string(format)).Int("rows", len(v.Dashboard.Rows)).Msg("exported")
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.render(w, r, status(err), page{Error: err.Error(), Periods: rpametrics.Periods})
		return
	}
	html, err := renderer.HTML(renderer.ReportMarkdown(v.Dashboard))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>RPA Metrics Report</title></head><body>"))
	w.Write([]byte(html))
	w.Write([]byte("</body></html>"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
