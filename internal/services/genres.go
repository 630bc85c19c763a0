package services

import (
	"context"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/sirupsen/logrus"
)

// sentinel value in the dataset for movies without genre information
const noGenresListed = "(no genres listed)"

// GenreService implements the genre read operations.
type GenreService struct {
	exec   graph.Executor
	logger *logrus.Logger
}

// NewGenreService creates a genre service over the graph executor.
func NewGenreService(exec graph.Executor, logger *logrus.Logger) *GenreService {
	return &GenreService{exec: exec, logger: logger}
}

// All returns every genre except the sentinel placeholder, each with its
// incoming movie count and the poster of its highest-rated movie,
// ordered by name.
func (s *GenreService) All(ctx context.Context) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (g:Genre)
			WHERE g.name <> $sentinel
			CALL {
				WITH g
				MATCH (g)<-[:IN_GENRE]-(m:Movie)
				WHERE m.imdbRating IS NOT NULL AND m.poster IS NOT NULL
				RETURN m.poster AS poster
				ORDER BY m.imdbRating DESC LIMIT 1
			}
			RETURN g {
				.*,
				movies: count{ (g)<-[:IN_GENRE]-(:Movie) },
				poster: poster
			} AS genre
			ORDER BY g.name ASC
		`, map[string]any{"sentinel": noGenresListed})
		if err != nil {
			return nil, err
		}
		return collectMaps(records, "genre"), nil
	})
	if err != nil {
		return nil, err
	}
	return asMovieList(result), nil
}

// Find returns a single genre by exact name with its movie count and
// representative poster. Zero rows is a not-found error carrying the
// name.
func (s *GenreService) Find(ctx context.Context, name string) (map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (g:Genre {name: $name})
			CALL {
				WITH g
				OPTIONAL MATCH (g)<-[:IN_GENRE]-(m:Movie)
				WHERE m.imdbRating IS NOT NULL AND m.poster IS NOT NULL
				RETURN m.poster AS poster
				ORDER BY m.imdbRating DESC LIMIT 1
			}
			RETURN g {
				.*,
				movies: count{ (g)<-[:IN_GENRE]-(:Movie) },
				poster: poster
			} AS genre
			LIMIT 1
		`, map[string]any{"name": name})
		if err != nil {
			return nil, err
		}

		genre, ok := singleMap(records, "genre")
		if !ok {
			return nil, apperr.NotFound("genre", name)
		}
		return genre, nil
	})
	if err != nil {
		return nil, err
	}
	return asMovie(result), nil
}
