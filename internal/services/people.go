package services

import (
	"context"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/sirupsen/logrus"
)

// PeopleService implements the person read operations. People are not
// favoritable, so no operation here annotates a favorite flag.
type PeopleService struct {
	exec   graph.Executor
	logger *logrus.Logger
}

// NewPeopleService creates a people service over the graph executor.
func NewPeopleService(exec graph.Executor, logger *logrus.Logger) *PeopleService {
	return &PeopleService{exec: exec, logger: logger}
}

// All returns a paginated list of people with an optional case-sensitive
// substring filter on name, ordered by name.
func (s *PeopleService) All(ctx context.Context, p params.Params) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		var q any
		if p.Query != "" {
			q = p.Query
		}

		records, err := tx.Run(ctx, `
			MATCH (p:Person)
			WHERE $q IS NULL OR p.name CONTAINS $q
			RETURN p { .* } AS person
			ORDER BY p.name ASC
			SKIP $skip
			LIMIT $limit
		`, map[string]any{"q": q, "skip": p.Skip, "limit": p.Limit})
		if err != nil {
			return nil, err
		}
		return collectMaps(records, "person"), nil
	})
	if err != nil {
		return nil, err
	}
	return asMovieList(result), nil
}

// FindByID returns a single person with the counts of movies they acted
// in and directed. Zero rows is a not-found error carrying the id.
func (s *PeopleService) FindByID(ctx context.Context, id string) (map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (p:Person {tmdbId: $id})
			RETURN p {
				.*,
				actedCount: count{ (p)-[:ACTED_IN]->() },
				directedCount: count{ (p)-[:DIRECTED]->() }
			} AS person
			LIMIT 1
		`, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}

		person, ok := singleMap(records, "person")
		if !ok {
			return nil, apperr.NotFound("person", id)
		}
		return person, nil
	})
	if err != nil {
		return nil, err
	}
	return asMovie(result), nil
}

// Similar returns people who acted in or directed movies shared with the
// given person. inCommon collects the shared movies together with the
// relationship type that connected them; results rank by the size of
// that list, ties breaking by tmdbId for a deterministic order.
func (s *PeopleService) Similar(ctx context.Context, id string, p params.Params) ([]map[string]any, error) {
	result, err := s.exec.ReadTx(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		records, err := tx.Run(ctx, `
			MATCH (:Person {tmdbId: $id})-[:ACTED_IN|DIRECTED]->(m)<-[r:ACTED_IN|DIRECTED]-(p)
			WHERE p.tmdbId <> $id
			RETURN p {
				.*,
				actedCount: count{ (p)-[:ACTED_IN]->() },
				directedCount: count{ (p)-[:DIRECTED]->() },
				inCommon: collect(m { .tmdbId, .title, type: type(r) })
			} AS person
			ORDER BY size(person.inCommon) DESC, p.tmdbId ASC
			SKIP $skip
			LIMIT $limit
		`, map[string]any{"id": id, "skip": p.Skip, "limit": p.Limit})
		if err != nil {
			return nil, err
		}
		return collectMaps(records, "person"), nil
	})
	if err != nil {
		return nil, err
	}
	return asMovieList(result), nil
}
