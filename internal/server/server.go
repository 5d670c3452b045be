package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/fitjournal/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  *store.WorkoutStore
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the API open, for localhost-only setups.
func New(st *store.WorkoutStore, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  st,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", s.handleListWorkouts)
			r.Post("/", s.handleCreateWorkout)

			r.Route("/{workoutID}", func(r chi.Router) {
				r.Get("/", s.handleGetWorkout)
				r.Put("/", s.handleUpdateWorkout)
				r.Delete("/", s.handleDeleteWorkout)

				r.Route("/segments", func(r chi.Router) {
					r.Post("/", s.handleCreateSegment)
					r.Post("/reorder", s.handleReorderSegments)

					r.Route("/{segmentID}", func(r chi.Router) {
						r.Put("/", s.handleUpdateSegment)
						r.Delete("/", s.handleDeleteSegment)

						r.Route("/sets", func(r chi.Router) {
							r.Post("/", s.handleCreateSet)
							r.Put("/{setID}", s.handleUpdateSet)
							r.Delete("/{setID}", s.handleDeleteSet)
						})
					})
				})
			})
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Post("/", s.handleCreateExercise)

			r.Route("/{exerciseID}", func(r chi.Router) {
				r.Get("/", s.handleGetExercise)
				r.Put("/", s.handleUpdateExercise)
				r.Delete("/", s.handleDeleteExercise)
				r.Get("/history", s.handleExerciseHistory)
				r.Get("/max-weight", s.handleExerciseMaxWeight)
			})
		})
	})
}
