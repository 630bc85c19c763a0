// Package server exposes the catalog services over HTTP. It owns
// nothing but plumbing: binding query parameters, extracting the
// authenticated user, and mapping domain errors to status codes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/neoflix/neoflix-go/internal/auth"
	"github.com/neoflix/neoflix-go/internal/services"
	"github.com/sirupsen/logrus"
)

// Services bundles the catalog services the server exposes.
type Services struct {
	Movies    *services.MovieService
	People    *services.PeopleService
	Genres    *services.GenreService
	Favorites *services.FavoriteService
	Ratings   *services.RatingService
}

// Server is the HTTP surface over the catalog services.
type Server struct {
	router chi.Router
	logger *logrus.Logger
	svc    Services
	health func() error
}

// New builds the router over the given services. health is called by the
// status endpoint and may be nil.
func New(svc Services, jwtSecret string, logger *logrus.Logger, health func() error) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		svc:    svc,
		health: health,
	}

	s.router.Use(requestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(auth.Middleware(jwtSecret))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", s.handleListMovies)
			r.Get("/{id}", s.handleFindMovie)
			r.Get("/{id}/similar", s.handleSimilarMovies)
			r.Get("/{id}/ratings", s.handleMovieRatings)
			r.Post("/{id}/ratings", s.handleAddRating)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", s.handleListGenres)
			r.Get("/{name}", s.handleFindGenre)
			r.Get("/{name}/movies", s.handleMoviesByGenre)
		})

		r.Route("/people", func(r chi.Router) {
			r.Get("/", s.handleListPeople)
			r.Get("/{id}", s.handleFindPerson)
			r.Get("/{id}/similar", s.handleSimilarPeople)
			r.Get("/{id}/acted", s.handleMoviesForActor)
			r.Get("/{id}/directed", s.handleMoviesForDirector)
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/favorites", s.handleListFavorites)
			r.Post("/favorites/{id}", s.handleAddFavorite)
			r.Delete("/favorites/{id}", s.handleRemoveFavorite)
		})
	})

	return s
}

// Handler returns the root http handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(); err != nil {
			writeJSON(s.logger, w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
			return
		}
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]any{"status": "ok"})
}
