package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/auth"
	"github.com/neoflix/neoflix-go/internal/params"
)

func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	movies, err := s.svc.Movies.All(r.Context(), p, auth.UserID(r.Context()))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movies)
}

func (s *Server) handleFindMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := s.svc.Movies.FindByID(r.Context(), pathParam(r, "id"), auth.UserID(r.Context()))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movie)
}

func (s *Server) handleSimilarMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	movies, err := s.svc.Movies.Similar(r.Context(), pathParam(r, "id"), p, auth.UserID(r.Context()))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movies)
}

func (s *Server) handleMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	movies, err := s.svc.Movies.ByGenre(r.Context(), pathParam(r, "name"), p, auth.UserID(r.Context()))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movies)
}

func (s *Server) handleMoviesForActor(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	movies, err := s.svc.Movies.ForActor(r.Context(), pathParam(r, "id"), p, auth.UserID(r.Context()))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movies)
}

func (s *Server) handleMoviesForDirector(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	movies, err := s.svc.Movies.ForDirector(r.Context(), pathParam(r, "id"), p, auth.UserID(r.Context()))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movies)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.svc.Genres.All(r.Context())
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, genres)
}

func (s *Server) handleFindGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := s.svc.Genres.Find(r.Context(), pathParam(r, "name"))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, genre)
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.PeopleSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	people, err := s.svc.People.All(r.Context(), p)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, people)
}

func (s *Server) handleFindPerson(w http.ResponseWriter, r *http.Request) {
	person, err := s.svc.People.FindByID(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, person)
}

func (s *Server) handleSimilarPeople(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.PeopleSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	people, err := s.svc.People.Similar(r.Context(), pathParam(r, "id"), p)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, people)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		s.writeUnauthorized(w)
		return
	}

	p, err := bindParams(r, params.MovieSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	movies, err := s.svc.Favorites.All(r.Context(), userID, p)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movies)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		s.writeUnauthorized(w)
		return
	}

	movie, err := s.svc.Favorites.Add(r.Context(), userID, pathParam(r, "id"))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusCreated, movie)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		s.writeUnauthorized(w)
		return
	}

	movie, err := s.svc.Favorites.Remove(r.Context(), userID, pathParam(r, "id"))
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, movie)
}

func (s *Server) handleMovieRatings(w http.ResponseWriter, r *http.Request) {
	p, err := bindParams(r, params.RatingSorts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	reviews, err := s.svc.Ratings.ForMovie(r.Context(), pathParam(r, "id"), p)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, reviews)
}

// ratingRequest is the POST body for saving a rating.
type ratingRequest struct {
	Rating int `json:"rating"`
}

func (s *Server) handleAddRating(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		s.writeUnauthorized(w)
		return
	}

	var body ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(s.logger, w, apperr.InvalidParameter("invalid rating payload"))
		return
	}
	// range check happens here at the boundary; the service trusts it
	if body.Rating < 1 || body.Rating > 5 {
		writeError(s.logger, w, apperr.InvalidParameterf("rating must be between 1 and 5, got %d", body.Rating))
		return
	}

	movie, err := s.svc.Ratings.Add(r.Context(), userID, pathParam(r, "id"), body.Rating)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}
	writeJSON(s.logger, w, http.StatusCreated, movie)
}

func (s *Server) writeUnauthorized(w http.ResponseWriter) {
	writeJSON(s.logger, w, http.StatusUnauthorized, map[string]any{"message": "authentication required"})
}
