package listing

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/rating"
)

func item(id string, ts int64, base int, cat models.Category, year int) models.Content {
	return models.Content{ID: id, Timestamp: ts, Rating: base, Category: cat, Year: year}
}

func ids(items []models.Content) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sample() []models.Content {
	return []models.Content{
		item("a", 100, 6, models.CategoryGood, 2020),
		item("b", 300, 9, models.CategoryMustWatch, 2021),
		item("c", 200, 3, models.CategoryBad, 2020),
		item("d", 50, 8, models.CategoryMustWatch, 2020),
		item("e", 300, 7, models.CategoryOneTimeWatch, 2021),
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeLatest, m)

	m, err = ParseMode("highestRated")
	require.NoError(t, err)
	assert.Equal(t, ModeHighestRated, m)

	_, err = ParseMode("oldest")
	assert.Error(t, err)
}

func TestDeriveLatest(t *testing.T) {
	items := sample()
	got := Derive(items, ModeLatest)

	// b and e share a timestamp and keep snapshot order.
	if diff := cmp.Diff([]string{"b", "e", "c", "a", "d"}, ids(got)); diff != "" {
		t.Fatalf("latest order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Timestamp > got[j].Timestamp }))
	assert.Equal(t, ids(got), ids(Derive(got, ModeLatest)))
	assert.Equal(t, "a", items[0].ID, "input must not be reordered")
}

func TestDeriveHighestRated(t *testing.T) {
	items := sample()
	items[0].RatingsByUser = map[string][]models.RatingEntry{
		"u1": {{Value: 10, Timestamp: 1}},
	}
	// a aggregates to 8.0 and ties with d; a is newer.
	got := Derive(items, ModeHighestRated)
	assert.Equal(t, []string{"b", "a", "d", "e", "c"}, ids(got))
}

func TestDeriveMustWatchOnlyFiltersWithoutSorting(t *testing.T) {
	items := sample()
	got := Derive(items, ModeMustWatchOnly)
	assert.Equal(t, []string{"b", "d"}, ids(got))
	for _, it := range got {
		assert.Equal(t, models.CategoryMustWatch, it.Category)
	}

	want := 0
	for _, it := range items {
		if it.Category == models.CategoryMustWatch {
			want++
		}
	}
	assert.Len(t, got, want)
}

func TestLeaderboard(t *testing.T) {
	items := sample()
	got := Leaderboard(items, 2020)
	assert.Equal(t, []string{"d", "a", "c"}, ids(got))
	for i, it := range got {
		assert.Equal(t, 2020, it.Year)
		if i > 0 {
			assert.GreaterOrEqual(t, rating.Aggregate(got[i-1]), rating.Aggregate(it))
		}
	}

	assert.Empty(t, Leaderboard(items, 1999))
}

func TestLeaderboardIgnoresTiesDeterministically(t *testing.T) {
	items := []models.Content{
		item("z", 10, 7, models.CategoryGood, 2022),
		item("y", 10, 7, models.CategoryGood, 2022),
		item("x", 20, 7, models.CategoryGood, 2022),
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids(Leaderboard(items, 2022)))
}

func TestPaginate(t *testing.T) {
	items := make([]models.Content, 32)
	for i := range items {
		items[i] = item(fmt.Sprintf("%02d", i), int64(i), 5, models.CategoryGood, 2020)
	}

	p := Paginate(items, 3)
	assert.Len(t, p.Items, 2)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 32, p.Total)
	assert.Equal(t, "30", p.Items[0].ID)

	p = Paginate(items, 1)
	assert.Len(t, p.Items, PageSize)
	assert.Equal(t, "00", p.Items[0].ID)

	p = Paginate(items, 0)
	assert.Equal(t, 1, p.Page)

	p = Paginate(items, 9)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)

	// (page-1)*PageSize would wrap negative
	huge := math.MaxInt/PageSize + 2
	p = Paginate(items[:3], huge)
	assert.Empty(t, p.Items)
	assert.Equal(t, huge, p.Page)
	assert.Equal(t, 1, p.TotalPages)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 1)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Total)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0))
	assert.Equal(t, 1, TotalPages(15))
	assert.Equal(t, 2, TotalPages(16))
	assert.Equal(t, 3, TotalPages(32))
}
