package services

import (
	"context"
	"testing"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieParams(t *testing.T, raw params.Raw) params.Params {
	t.Helper()
	p, err := params.Parse(raw, params.MovieSorts)
	require.NoError(t, err)
	return p
}

func TestMovieAllAnonymousSkipsFavoriteQuery(t *testing.T) {
	exec, tx := newFake(t, stub{
		contains: "MATCH (m:Movie)",
		records: []graph.Record{
			aliased("movie", map[string]any{"tmdbId": "862", "title": "Toy Story", "favorite": false}),
		},
	})
	svc := NewMovieService(exec, testLogger())

	movies, err := svc.All(context.Background(), movieParams(t, params.Raw{}), "")
	require.NoError(t, err)

	require.Len(t, movies, 1)
	assert.Equal(t, "Toy Story", movies[0]["title"])
	assert.Equal(t, false, movies[0]["favorite"])

	// no userId: the favorite resolver never touches the store
	require.True(t, tx.exhausted())
	assert.Len(t, tx.Queries, 1)
	assert.Equal(t, []string{}, tx.Params[0]["favorites"])
	assert.Equal(t, 1, exec.Reads, "one transaction per operation")
}

func TestMovieAllResolvesFavoritesInSameTransaction(t *testing.T) {
	exec, tx := newFake(t,
		stub{contains: "HAS_FAVORITE", records: []graph.Record{idRecord("862")}},
		stub{contains: "MATCH (m:Movie)", records: []graph.Record{
			aliased("movie", map[string]any{"tmdbId": "862", "title": "Toy Story", "favorite": true}),
		}},
	)
	svc := NewMovieService(exec, testLogger())

	p := movieParams(t, params.Raw{Sort: "title", Order: "ASC", Limit: "2", Skip: "0"})
	movies, err := svc.All(context.Background(), p, "u1")
	require.NoError(t, err)

	require.Len(t, movies, 1)
	assert.Equal(t, true, movies[0]["favorite"])

	require.True(t, tx.exhausted())
	assert.Equal(t, "u1", tx.Params[0]["userId"])
	assert.Equal(t, []string{"862"}, tx.Params[1]["favorites"])
	assert.Equal(t, 2, tx.Params[1]["limit"])
	assert.Equal(t, 0, tx.Params[1]["skip"])
	assert.Equal(t, 1, exec.Reads, "resolver and listing share one transaction")
}

func TestMovieAllSplicesValidatedSortOnly(t *testing.T) {
	exec, tx := newFake(t, stub{records: nil})
	svc := NewMovieService(exec, testLogger())

	p := movieParams(t, params.Raw{Sort: "imdbRating", Order: "desc"})
	movies, err := svc.All(context.Background(), p, "")
	require.NoError(t, err)

	assert.Empty(t, movies, "listings return an empty sequence, never an error on no rows")
	assert.Contains(t, tx.Queries[0], "ORDER BY m.imdbRating DESC")
	assert.Contains(t, tx.Queries[0], "WHERE m.imdbRating IS NOT NULL")
}

func TestMovieFindByIDNotFound(t *testing.T) {
	exec, _ := newFake(t,
		stub{contains: "HAS_FAVORITE", records: nil},
		stub{contains: "MATCH (m:Movie {tmdbId: $id})", records: nil},
	)
	svc := NewMovieService(exec, testLogger())

	_, err := svc.FindByID(context.Background(), "nonexistent-id", "u1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "nonexistent-id", appErr.Details["key"])
}

func TestMovieFindByIDBindsIDAndNestedLists(t *testing.T) {
	movie := map[string]any{
		"tmdbId": "680",
		"title":  "Pulp Fiction",
		"actors": []any{map[string]any{"name": "John Travolta", "role": "Vincent Vega"}},
		"genres": []any{map[string]any{"name": "Crime"}},
	}
	exec, tx := newFake(t,
		stub{contains: "HAS_FAVORITE", records: nil},
		stub{contains: "ACTED_IN", records: []graph.Record{aliased("movie", movie)}},
	)
	svc := NewMovieService(exec, testLogger())

	got, err := svc.FindByID(context.Background(), "680", "u1")
	require.NoError(t, err)

	assert.Equal(t, "Pulp Fiction", got["title"])
	assert.Equal(t, "680", tx.Params[1]["id"], "lookup binds the movie id, not the user id")
	assert.Contains(t, tx.Queries[1], "directors:")
	assert.Contains(t, tx.Queries[1], "ratingCount:")
}

func TestMovieSimilarExcludesSourceAndBreaksTiesDeterministically(t *testing.T) {
	exec, tx := newFake(t,
		stub{contains: "HAS_FAVORITE", records: []graph.Record{idRecord("603")}},
		stub{contains: "IN_GENRE|ACTED_IN|DIRECTED", records: []graph.Record{
			aliased("movie", map[string]any{"tmdbId": "603", "title": "The Matrix", "score": 43.2, "favorite": true}),
		}},
	)
	svc := NewMovieService(exec, testLogger())

	movies, err := svc.Similar(context.Background(), "862", movieParams(t, params.Raw{}), "u1")
	require.NoError(t, err)

	require.Len(t, movies, 1)
	assert.Equal(t, 43.2, movies[0]["score"])

	query := tx.Queries[1]
	assert.Contains(t, query, "m.imdbRating IS NOT NULL")
	assert.Contains(t, query, "m.tmdbId <> $id")
	assert.Contains(t, query, "ORDER BY score DESC, m.tmdbId ASC")
	assert.Equal(t, "862", tx.Params[1]["id"])
}

func TestMovieByGenreBindsName(t *testing.T) {
	exec, tx := newFake(t,
		stub{contains: "HAS_FAVORITE", records: nil},
		stub{contains: "IN_GENRE]->(:Genre {name: $name})", records: nil},
	)
	svc := NewMovieService(exec, testLogger())

	_, err := svc.ByGenre(context.Background(), "Comedy", movieParams(t, params.Raw{}), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Comedy", tx.Params[1]["name"])
}

func TestMovieForActorAndDirectorUseFixedRelationship(t *testing.T) {
	tests := []struct {
		name string
		call func(svc *MovieService, ctx context.Context, p params.Params) ([]map[string]any, error)
		rel  string
	}{
		{
			name: "actor",
			call: func(svc *MovieService, ctx context.Context, p params.Params) ([]map[string]any, error) {
				return svc.ForActor(ctx, "31", p, "")
			},
			rel: "[:ACTED_IN]->(m:Movie)",
		},
		{
			name: "director",
			call: func(svc *MovieService, ctx context.Context, p params.Params) ([]map[string]any, error) {
				return svc.ForDirector(ctx, "1776", p, "")
			},
			rel: "[:DIRECTED]->(m:Movie)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, tx := newFake(t, stub{contains: "Person {tmdbId: $id}"})
			svc := NewMovieService(exec, testLogger())

			_, err := tt.call(svc, context.Background(), movieParams(t, params.Raw{}))
			require.NoError(t, err)
			assert.Contains(t, tx.Queries[0], tt.rel)
		})
	}
}
