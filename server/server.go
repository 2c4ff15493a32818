// Package server serves the RPA metrics dashboard over HTTP: an HTML page
// drawn with Plotly.js, a JSON API, static PNG charts, exports and a report.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/rpametrics"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server is the dashboard HTTP handler.
type Server struct {
	loader rpametrics.Loader
	log    zerolog.Logger
	opts   []rpametrics.Option
	router *mux.Router
}

// New returns a server reading runs from loader. The options apply to every
// dashboard.
func New(loader rpametrics.Loader, log zerolog.Logger, opts ...rpametrics.Option) *Server {
	s := &Server{loader: loader, log: log, opts: opts, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(accessLog(s.log))
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/options", s.handleOptions).Methods(http.MethodGet)
	r.HandleFunc("/charts/{id}.png", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc("/export.{format:csv|xlsx}", s.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	zerolog.Ctx(ctx).Info().Str("addr", addr).Msg("dashboard listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
