package services

import (
	"context"
	"fmt"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/sirupsen/logrus"
)

// FavoriteService manages the HAS_FAVORITE relationship between users
// and movies. Add is an idempotent upsert; Remove treats a missing
// relationship as an error rather than a silent no-op.
type FavoriteService struct {
	exec   graph.Executor
	logger *logrus.Logger
}

// NewFavoriteService creates a favorite service over the graph executor.
func NewFavoriteService(exec graph.Executor, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{exec: exec, logger: logger}
}

// All returns the user's favorite movies, paginated and sorted.
func (s *FavoriteService) All(ctx context.Context, userID string, p params.Params) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		query := fmt.Sprintf(`
			MATCH (u:User {userId: $userId})-[:HAS_FAVORITE]->(m:Movie)
			RETURN m {
				.*,
				favorite: true
			} AS movie
			ORDER BY m.%s %s
			SKIP $skip
			LIMIT $limit
		`, p.Sort, p.Order)

		records, err := tx.Run(ctx, query, map[string]any{
			"userId": userID,
			"skip":   p.Skip,
			"limit":  p.Limit,
		})
		if err != nil {
			return nil, err
		}
		return collectMaps(records, "movie"), nil
	})
	if err != nil {
		return nil, err
	}
	return asMovieList(result), nil
}

// Add creates the HAS_FAVORITE relationship between the user and the
// movie. Both endpoints must already exist; re-adding an existing
// favorite is a no-op and keeps the original createdAt stamp. The
// updated movie is returned with favorite set to true.
func (s *FavoriteService) Add(ctx context.Context, userID, movieID string) (map[string]any, error) {
	result, err := s.exec.WriteTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (u:User {userId: $userId})
			MATCH (m:Movie {tmdbId: $movieId})
			MERGE (u)-[r:HAS_FAVORITE]->(m)
			ON CREATE SET r.createdAt = datetime()
			RETURN m {
				.*,
				favorite: true
			} AS movie
		`, map[string]any{"userId": userID, "movieId": movieID})
		if err != nil {
			return nil, err
		}

		movie, ok := singleMap(records, "movie")
		if !ok {
			return nil, apperr.Validation("couldn't create a favorite relationship for user").
				WithDetail("userId", userID).
				WithDetail("movieId", movieID)
		}
		return movie, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"userId": userID, "movieId": movieID}).Debug("favorite added")
	return asMovie(result), nil
}

// Remove deletes the HAS_FAVORITE relationship between the user and the
// movie. A missing relationship or endpoint is a validation error
// carrying both ids. The updated movie is returned with favorite set to
// false.
func (s *FavoriteService) Remove(ctx context.Context, userID, movieID string) (map[string]any, error) {
	result, err := s.exec.WriteTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (u:User {userId: $userId})-[r:HAS_FAVORITE]->(m:Movie {tmdbId: $movieId})
			DELETE r
			RETURN m {
				.*,
				favorite: false
			} AS movie
		`, map[string]any{"userId": userID, "movieId": movieID})
		if err != nil {
			return nil, err
		}

		movie, ok := singleMap(records, "movie")
		if !ok {
			return nil, apperr.Validation("could not find the favorite relationship").
				WithDetail("userId", userID).
				WithDetail("movieId", movieID)
		}
		return movie, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"userId": userID, "movieId": movieID}).Debug("favorite removed")
	return asMovie(result), nil
}
