package services

import (
	"context"
	"errors"
	"testing"

	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFavoritesEmptyUserSkipsStore(t *testing.T) {
	_, tx := newFake(t) // no stubs: any query would fail the test

	ids, err := userFavorites(context.Background(), tx, "")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, tx.Queries)
}

func TestUserFavoritesCollectsIDs(t *testing.T) {
	_, tx := newFake(t, stub{
		contains: "HAS_FAVORITE",
		records:  []graph.Record{idRecord("862"), idRecord("680")},
	})

	ids, err := userFavorites(context.Background(), tx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"862", "680"}, ids)
	assert.Equal(t, "u1", tx.Params[0]["userId"])
}

func TestUserFavoritesPropagatesQueryError(t *testing.T) {
	_, tx := newFake(t, stub{err: errors.New("connection reset")})

	_, err := userFavorites(context.Background(), tx, "u1")
	assert.EqualError(t, err, "connection reset")
}

func TestCollectMapsSkipsRowsWithoutAlias(t *testing.T) {
	records := []graph.Record{
		aliased("movie", map[string]any{"tmdbId": "862"}),
		graph.NewRecord([]string{"other"}, map[string]any{"other": 1}),
	}

	movies := collectMaps(records, "movie")
	require.Len(t, movies, 1)
	assert.Equal(t, "862", movies[0]["tmdbId"])
}

func TestSingleMapEmptyResult(t *testing.T) {
	_, ok := singleMap(nil, "movie")
	assert.False(t, ok)
}
