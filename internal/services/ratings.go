package services

import (
	"context"
	"fmt"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/sirupsen/logrus"
)

// RatingService manages the RATED relationship between users and movies
// and lists a movie's reviews.
type RatingService struct {
	exec   graph.Executor
	logger *logrus.Logger
}

// NewRatingService creates a rating service over the graph executor.
func NewRatingService(exec graph.Executor, logger *logrus.Logger) *RatingService {
	return &RatingService{exec: exec, logger: logger}
}

// ForMovie returns a paginated list of reviews for a movie, each joined
// with the rating user's public identity, newest first by default.
func (s *RatingService) ForMovie(ctx context.Context, movieID string, p params.Params) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		query := fmt.Sprintf(`
			MATCH (u:User)-[r:RATED]->(m:Movie {tmdbId: $id})
			RETURN r {
				.rating,
				.timestamp,
				user: u {
					.userId, .name
				}
			} AS review
			ORDER BY r.%s %s
			SKIP $skip
			LIMIT $limit
		`, p.Sort, p.Order)

		records, err := tx.Run(ctx, query, map[string]any{
			"id":    movieID,
			"skip":  p.Skip,
			"limit": p.Limit,
		})
		if err != nil {
			return nil, err
		}
		return collectMaps(records, "review"), nil
	})
	if err != nil {
		return nil, err
	}
	return asMovieList(result), nil
}

// Add upserts the RATED relationship between the user and the movie.
// Both endpoints must already exist; a second call for the same pair
// overwrites the rating and timestamp rather than creating a second
// edge. The rating is range-validated by the caller before invocation.
// Returns the movie with the stored rating attached.
func (s *RatingService) Add(ctx context.Context, userID, movieID string, rating int) (map[string]any, error) {
	result, err := s.exec.WriteTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (u:User {userId: $userId})
			MATCH (m:Movie {tmdbId: $movieId})
			MERGE (u)-[r:RATED]->(m)
			SET r.rating = $rating, r.timestamp = timestamp()
			RETURN m {
				.*,
				rating: r.rating
			} AS movie
		`, map[string]any{"userId": userID, "movieId": movieID, "rating": rating})
		if err != nil {
			return nil, err
		}

		movie, ok := singleMap(records, "movie")
		if !ok {
			return nil, apperr.Validation("movie or user not found to add rating").
				WithDetail("userId", userID).
				WithDetail("movieId", movieID)
		}
		return movie, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"userId":  userID,
		"movieId": movieID,
		"rating":  rating,
	}).Debug("rating saved")
	return asMovie(result), nil
}
