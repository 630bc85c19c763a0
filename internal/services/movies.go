package services

import (
	"context"
	"fmt"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/sirupsen/logrus"
)

// MovieService implements the movie read operations: listing, lookup,
// traversal-filtered variants and similarity.
type MovieService struct {
	exec   graph.Executor
	logger *logrus.Logger
}

// NewMovieService creates a movie service over the graph executor.
func NewMovieService(exec graph.Executor, logger *logrus.Logger) *MovieService {
	return &MovieService{exec: exec, logger: logger}
}

// All returns a paginated list of movies ordered by the sort parameter.
// When userID is set, each movie carries a favorite flag computed against
// that user's favorite set.
func (s *MovieService) All(ctx context.Context, p params.Params, userID string) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		favorites, err := userFavorites(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		// p.Sort and p.Order come from a validated closed enum, never
		// verbatim from request input.
		query := fmt.Sprintf(`
			MATCH (m:Movie)
			WHERE m.%[1]s IS NOT NULL
			RETURN m {
				.*,
				favorite: m.tmdbId IN $favorites
			} AS movie
			ORDER BY m.%[1]s %[2]s
			SKIP $skip
			LIMIT $limit
		`, p.Sort, p.Order)

		records, err := tx.Run(ctx, query, map[string]any{
			"skip":      p.Skip,
			"limit":     p.Limit,
			"favorites": favorites,
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

// FindByID returns a single movie with its actor list (each actor
// carrying the role from the edge), director list, genre names and
// incoming rating count. Zero rows is a not-found error carrying the id.
func (s *MovieService) FindByID(ctx context.Context, id, userID string) (map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		favorites, err := userFavorites(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		records, err := tx.Run(ctx, `
			MATCH (m:Movie {tmdbId: $id})
			RETURN m {
				.*,
				actors: [ (a)-[r:ACTED_IN]->(m) | a { .*, role: r.role } ],
				directors: [ (d)-[:DIRECTED]->(m) | d { .* } ],
				genres: [ (m)-[:IN_GENRE]->(g) | g { .name } ],
				ratingCount: count{ (m)<-[:RATED]-(:User) },
				favorite: m.tmdbId IN $favorites
			} AS movie
			LIMIT 1
		`, map[string]any{"id": id, "favorites": favorites})
		if err != nil {
			return nil, err
		}

		movie, ok := singleMap(records, "movie")
		if !ok {
			return nil, apperr.NotFound("movie", id)
		}
		return movie, nil
	})
	if err != nil {
		return nil, err
	}
	return asMovie(result), nil
}

// Similar returns movies sharing first-degree connections (genres,
// actors, directors) with the given movie, ranked by imdbRating
// multiplied by the number of shared connections. Candidates without an
// imdbRating are excluded, and the source movie never appears in its own
// results. Ties on score break by tmdbId so the order is deterministic.
func (s *MovieService) Similar(ctx context.Context, id string, p params.Params, userID string) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		favorites, err := userFavorites(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		records, err := tx.Run(ctx, `
			MATCH (:Movie {tmdbId: $id})-[:IN_GENRE|ACTED_IN|DIRECTED]->()<-[:IN_GENRE|ACTED_IN|DIRECTED]-(m)
			WHERE m.imdbRating IS NOT NULL AND m.tmdbId <> $id

			WITH m, count(*) AS inCommon
			WITH m, inCommon, m.imdbRating * inCommon AS score
			ORDER BY score DESC, m.tmdbId ASC

			SKIP $skip
			LIMIT $limit

			RETURN m {
				.*,
				score: score,
				favorite: m.tmdbId IN $favorites
			} AS movie
		`, map[string]any{
			"id":        id,
			"skip":      p.Skip,
			"limit":     p.Limit,
			"favorites": favorites,
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

// ByGenre returns a paginated list of movies related to the named genre.
func (s *MovieService) ByGenre(ctx context.Context, name string, p params.Params, userID string) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		favorites, err := userFavorites(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		query := fmt.Sprintf(`
			MATCH (m:Movie)-[:IN_GENRE]->(:Genre {name: $name})
			WHERE m.%[1]s IS NOT NULL
			RETURN m {
				.*,
				favorite: m.tmdbId IN $favorites
			} AS movie
			ORDER BY m.%[1]s %[2]s
			SKIP $skip
			LIMIT $limit
		`, p.Sort, p.Order)

		records, err := tx.Run(ctx, query, map[string]any{
			"name":      name,
			"skip":      p.Skip,
			"limit":     p.Limit,
			"favorites": favorites,
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

// ForActor returns a paginated list of movies the person acted in.
func (s *MovieService) ForActor(ctx context.Context, actorID string, p params.Params, userID string) ([]map[string]any, error) {
	return s.forPerson(ctx, "ACTED_IN", actorID, p, userID)
}

// ForDirector returns a paginated list of movies the person directed.
func (s *MovieService) ForDirector(ctx context.Context, directorID string, p params.Params, userID string) ([]map[string]any, error) {
	return s.forPerson(ctx, "DIRECTED", directorID, p, userID)
}

// forPerson is the shared traversal behind ForActor and ForDirector.
// rel is one of the two fixed relationship types, never caller input.
func (s *MovieService) forPerson(ctx context.Context, rel, personID string, p params.Params, userID string) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		favorites, err := userFavorites(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		query := fmt.Sprintf(`
			MATCH (:Person {tmdbId: $id})-[:%[1]s]->(m:Movie)
			WHERE m.%[2]s IS NOT NULL
			RETURN m {
				.*,
				favorite: m.tmdbId IN $favorites
			} AS movie
			ORDER BY m.%[2]s %[3]s
			SKIP $skip
			LIMIT $limit
		`, rel, p.Sort, p.Order)

		records, err := tx.Run(ctx, query, map[string]any{
			"id":        personID,
			"skip":      p.Skip,
			"limit":     p.Limit,
			"favorites": favorites,
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
