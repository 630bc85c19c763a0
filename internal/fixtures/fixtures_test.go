package fixtures

import (
	"testing"

	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReturnsCopies(t *testing.T) {
	first, err := List("popular")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// mutate the returned copy, then reload
	first[0]["title"] = "Mutated"
	first[0]["extra"] = true

	second, err := List("popular")
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", second[0]["title"])
	assert.NotContains(t, second[0], "extra")
}

func TestSingleReturnsCopy(t *testing.T) {
	movie, err := Single("pulpfiction")
	require.NoError(t, err)
	assert.Equal(t, "Pulp Fiction", movie["title"])

	actors, ok := movie["actors"].([]any)
	require.True(t, ok)
	actors[0].(map[string]any)["name"] = "Mutated"

	again, err := Single("pulpfiction")
	require.NoError(t, err)
	assert.Equal(t, "John Travolta", again["actors"].([]any)[0].(map[string]any)["name"])
}

func TestListUnknownName(t *testing.T) {
	_, err := List("does-not-exist")
	assert.Error(t, err)
}

func TestProcessSortSkipLimit(t *testing.T) {
	list, err := List("popular")
	require.NoError(t, err)

	p, err := params.Parse(params.Raw{Sort: "title", Order: "ASC", Limit: "2", Skip: "0"}, params.MovieSorts)
	require.NoError(t, err)

	page := Process(list, p)
	require.Len(t, page, 2)
	assert.Equal(t, "Fight Club", page[0]["title"])
	assert.Equal(t, "Forrest Gump", page[1]["title"])
}

func TestProcessSkipBeyondEnd(t *testing.T) {
	list, err := List("popular")
	require.NoError(t, err)

	p, err := params.Parse(params.Raw{Skip: "1000"}, params.MovieSorts)
	require.NoError(t, err)

	assert.Empty(t, Process(list, p))
}

func TestProcessDescendingNumericSort(t *testing.T) {
	list, err := List("popular")
	require.NoError(t, err)

	p, err := params.Parse(params.Raw{Sort: "imdbRating", Order: "DESC", Limit: "3"}, params.MovieSorts)
	require.NoError(t, err)

	page := Process(list, p)
	require.Len(t, page, 3)
	assert.Equal(t, "The Shawshank Redemption", page[0]["title"])
	assert.Equal(t, "The Godfather", page[1]["title"])
	assert.Equal(t, "The Dark Knight", page[2]["title"])
}

func TestProcessReturnsMinOfLimitAndRemaining(t *testing.T) {
	list, err := List("popular")
	require.NoError(t, err)

	p, err := params.Parse(params.Raw{Sort: "title", Skip: "6", Limit: "100"}, params.MovieSorts)
	require.NoError(t, err)

	assert.Len(t, Process(list, p), len(list)-6)
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	list, err := List("popular")
	require.NoError(t, err)
	firstBefore := list[0]["title"]

	p, err := params.Parse(params.Raw{Sort: "title", Order: "DESC"}, params.MovieSorts)
	require.NoError(t, err)
	Process(list, p)

	assert.Equal(t, firstBefore, list[0]["title"])
}
