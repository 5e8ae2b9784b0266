// Package web exposes the tracker's UI surface as a JSON API over localhost,
// plus a server-sent-events stream for the tick-driven state.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/punchcard/internal/config"
	"github.com/Tiliavir/punchcard/internal/tracker"
)

// Server serves the web API for one Tracker.
type Server struct {
	tracker    *tracker.Tracker
	log        zerolog.Logger
	addr       string
	corsOrigin string
}

// NewServer builds a Server from the config's server section.
func NewServer(cfg config.ServerConfig, t *tracker.Tracker, log zerolog.Logger) *Server {
	return &Server{
		tracker:    t,
		log:        log,
		addr:       cfg.Addr,
		corsOrigin: cfg.CORSOrigin,
	}
}

// Router builds the chi router with CORS and access logging.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.accessLog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/start", s.handleStart)
		r.Post("/pause", s.handlePause)
		r.Put("/description", s.handleDescription)

		r.Get("/activities", s.handleActivities)
		r.Post("/activities", s.handleAddActivity)
		r.Delete("/activities", s.handleDeleteAll)
		r.Delete("/activities/{id}", s.handleDeleteActivity)

		r.Get("/descriptions", s.handleDescriptions)

		r.Get("/days", s.handleDays)
		r.Delete("/days/{date}", s.handleDeleteDay)

		r.Get("/events", s.handleEvents)
	})
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("shutdown incomplete")
		}
	}()

	s.log.Info().Str("addr", s.addr).Msg("web API listening")
	err := srv.ListenAndServe()
	<-done
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// captureWriter records the status code and bytes written for access logging.
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

func (cw *captureWriter) Flush() {
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// accessLog logs method, path, status, elapsed and bytes written.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(cw, r)

		s.log.Info().
			Int("status", cw.status).
			Dur("elapsed", time.Since(start)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("bytes", cw.bytes).
			Msg("request done")
	})
}
