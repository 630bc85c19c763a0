package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/fixtures"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/sirupsen/logrus"
)

// Demo serves the embedded fixture dataset over the same read routes as
// the full server, for running without a graph store. The fixture data
// is loaded once at construction and never mutated, so mutation routes
// are not available.
type Demo struct {
	router  chi.Router
	logger  *logrus.Logger
	movies  []map[string]any
	genres  []map[string]any
	people  []map[string]any
	ratings []map[string]any
}

// NewDemo builds the offline router over the embedded fixtures.
func NewDemo(logger *logrus.Logger) (*Demo, error) {
	movies, err := fixtures.List("popular")
	if err != nil {
		return nil, err
	}
	genres, err := fixtures.List("genres")
	if err != nil {
		return nil, err
	}
	people, err := fixtures.List("people")
	if err != nil {
		return nil, err
	}
	ratings, err := fixtures.List("ratings")
	if err != nil {
		return nil, err
	}

	d := &Demo{
		router:  chi.NewRouter(),
		logger:  logger,
		movies:  movies,
		genres:  genres,
		people:  people,
		ratings: ratings,
	}

	d.router.Use(requestID)
	d.router.Use(requestLogger(logger))

	d.router.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(logger, w, http.StatusOK, map[string]any{"status": "ok", "mode": "offline"})
		})

		r.Get("/movies", d.handleMovies)
		r.Get("/movies/{id}", d.handleMovie)
		r.Get("/movies/{id}/similar", d.handleMovies)
		r.Get("/movies/{id}/ratings", d.handleRatings)

		r.Get("/genres", d.handleGenres)
		r.Get("/genres/{name}", d.handleGenre)
		r.Get("/genres/{name}/movies", d.handleMovies)

		r.Get("/people", d.handlePeople)
		r.Get("/people/{id}", d.handlePerson)
		r.Get("/people/{id}/similar", d.handlePeople)
		r.Get("/people/{id}/acted", d.handleMovies)
		r.Get("/people/{id}/directed", d.handleMovies)

		// favorites and ratings mutate the graph, which offline mode
		// does not have; anything outside the read routes lands here
		unavailable := func(w http.ResponseWriter, r *http.Request) {
			writeJSON(logger, w, http.StatusNotImplemented, map[string]any{
				"message": "not available in offline mode",
			})
		}
		r.NotFound(unavailable)
		r.MethodNotAllowed(unavailable)
	})

	return d, nil
}

// Handler returns the root http handler.
func (d *Demo) Handler() http.Handler {
	return d.router
}

func (d *Demo) handleMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(d.logger, w, err)
		return
	}
	writeJSON(d.logger, w, http.StatusOK, fixtures.Process(d.movies, p))
}

func (d *Demo) handleMovie(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	// the single-movie fixture carries the nested actor/genre lists
	if movie, err := fixtures.Single("pulpfiction"); err == nil && movie["tmdbId"] == id {
		writeJSON(d.logger, w, http.StatusOK, movie)
		return
	}

	for _, movie := range d.movies {
		if movie["tmdbId"] == id {
			writeJSON(d.logger, w, http.StatusOK, movie)
			return
		}
	}
	writeError(d.logger, w, apperr.NotFound("movie", id))
}

func (d *Demo) handleRatings(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.RatingSorts)
	if err != nil {
		writeError(d.logger, w, err)
		return
	}
	writeJSON(d.logger, w, http.StatusOK, fixtures.Process(d.ratings, p))
}

func (d *Demo) handleGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(d.logger, w, http.StatusOK, d.genres)
}

func (d *Demo) handleGenre(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	for _, genre := range d.genres {
		if genre["name"] == name {
			writeJSON(d.logger, w, http.StatusOK, genre)
			return
		}
	}
	writeError(d.logger, w, apperr.NotFound("genre", name))
}

func (d *Demo) handlePeople(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.PeopleSorts)
	if err != nil {
		writeError(d.logger, w, err)
		return
	}

	people := d.people
	if p.Query != "" {
		filtered := make([]map[string]any, 0, len(people))
		for _, person := range people {
			if name, ok := person["name"].(string); ok && strings.Contains(name, p.Query) {
				filtered = append(filtered, person)
			}
		}
		people = filtered
	}
	writeJSON(d.logger, w, http.StatusOK, fixtures.Process(people, p))
}

func (d *Demo) handlePerson(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	for _, person := range d.people {
		if person["tmdbId"] == id {
			writeJSON(d.logger, w, http.StatusOK, person)
			return
		}
	}
	writeError(d.logger, w, apperr.NotFound("person", id))
}
