// Package services implements the catalog query and relationship
// mutation operations over the graph access port. Each operation runs in
// exactly one transaction; listings resolve the caller's favorite set
// inside that same transaction so the annotation is snapshot-consistent.
package services

import (
	"context"

	"github.com/neoflix/neoflix-go/internal/graph"
)

// userFavorites returns the tmdbIds of the movies the user has marked as
// favorites. An empty userID short-circuits to an empty set without
// touching the store. Must be called inside the transaction of the
// listing it supports.
func userFavorites(ctx context.Context, tx graph.Tx, userID string) ([]string, error) {
	if userID == "" {
		return []string{}, nil
	}

	records, err := tx.Run(ctx, `
		MATCH (u:User {userId: $userId})-[:HAS_FAVORITE]->(m)
		RETURN m.tmdbId AS id
	`, map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if id, ok := rec.Get("id"); ok {
			if s, ok := id.(string); ok {
				ids = append(ids, s)
			}
		}
	}
	return ids, nil
}

// collectMaps extracts the aliased map projection from every record.
func collectMaps(records []graph.Record, alias string) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if m, ok := rec.GetMap(alias); ok {
			out = append(out, m)
		}
	}
	return out
}

// singleMap extracts the aliased map projection from the first record,
// reporting whether any row matched.
func singleMap(records []graph.Record, alias string) (map[string]any, bool) {
	if len(records) == 0 {
		return nil, false
	}
	m, ok := records[0].GetMap(alias)
	return m, ok
}

func asMovieList(result any) []map[string]any {
	movies, _ := result.([]map[string]any)
	return movies
}

func asMovie(result any) map[string]any {
	movie, _ := result.(map[string]any)
	return movie
}
