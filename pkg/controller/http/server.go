package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/raceops/trackdesk/pkg/domain/model"
	"github.com/raceops/trackdesk/pkg/usecase"
	"github.com/raceops/trackdesk/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	track  *model.TrackRegistry
}

type Options func(*Server)

// WithTrackRegistry exposes the track's pick-lists on GET /api/track.
func WithTrackRegistry(track *model.TrackRegistry) Options {
	return func(s *Server) {
		s.track = track
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", s.createIncident)
			r.Get("/", s.listIncidents)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getIncident)
				r.Put("/", s.updateIncident)
				r.Delete("/", s.deleteIncident)
				r.Post("/complete", s.completeIncident)
				r.Post("/dispatch", s.markDispatched)
				r.Post("/arrive", s.markArrived)

				r.Route("/notes", func(r chi.Router) {
					r.Post("/", s.addNote)
					r.Get("/", s.listNotes)
				})
			})
		})

		r.Get("/export/{format}", s.exportBoard)

		if s.track != nil {
			r.Get("/track", s.getTrack)
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
