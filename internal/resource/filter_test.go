package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func fixtures() []Resource {
	return []Resource{
		{ID: "a", Title: "React Hooks", Description: "state and effects", Category: CategoryFrontend,
			Technologies: []string{"React"}, Languages: []string{"JavaScript", "TypeScript"},
			UsefulCount: 10, FavoriteCount: 5, DateAdded: day(15)},
		{ID: "b", Title: "Docker Basics", Description: "containers for everyone", Category: CategoryDevOps,
			Technologies: []string{"Docker"}, Languages: []string{},
			UsefulCount: 30, FavoriteCount: 5, DateAdded: day(10)},
		{ID: "c", Title: "Node APIs", Description: "Build REST services with react-style thinking", Category: CategoryBackend,
			Technologies: []string{"Node.js", "Express"}, Languages: []string{"JavaScript"},
			UsefulCount: 10, FavoriteCount: 9, DateAdded: day(20)},
		{ID: "d", Title: "Go Concurrency", Description: "channels", Category: CategoryBackend,
			Technologies: []string{}, Languages: []string{"Go"},
			UsefulCount: 20, FavoriteCount: 1, DateAdded: day(20)},
	}
}

func ids(items []Resource) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestFilterAndSort(t *testing.T) {
	t.Run("Default criteria returns everything newest first", func(t *testing.T) {
		got := FilterAndSort(fixtures(), DefaultCriteria())
		// c and d share a date and keep their input order
		assert.Equal(t, []string{"c", "d", "a", "b"}, ids(got))
	})

	t.Run("Search is case-insensitive over title and description", func(t *testing.T) {
		c := DefaultCriteria()
		c.SearchText = "REACT"
		got := FilterAndSort(fixtures(), c)
		assert.Equal(t, []string{"c", "a"}, ids(got))
	})

	t.Run("Search does not look at technologies", func(t *testing.T) {
		c := DefaultCriteria()
		c.SearchText = "express"
		assert.Empty(t, FilterAndSort(fixtures(), c))
	})

	t.Run("Category filter is exact", func(t *testing.T) {
		c := DefaultCriteria()
		c.Category = string(CategoryBackend)
		got := FilterAndSort(fixtures(), c)
		assert.Equal(t, []string{"c", "d"}, ids(got))
	})

	t.Run("Technology and language filters require membership", func(t *testing.T) {
		c := DefaultCriteria()
		c.Technology = "Docker"
		assert.Equal(t, []string{"b"}, ids(FilterAndSort(fixtures(), c)))

		c = DefaultCriteria()
		c.Language = "JavaScript"
		assert.Equal(t, []string{"c", "a"}, ids(FilterAndSort(fixtures(), c)))

		c.Language = "javascript"
		assert.Empty(t, FilterAndSort(fixtures(), c), "membership is case-sensitive")
	})

	t.Run("Filters combine", func(t *testing.T) {
		c := DefaultCriteria()
		c.Category = string(CategoryFrontend)
		c.Language = "Go"
		assert.Empty(t, FilterAndSort(fixtures(), c))
	})

	t.Run("Blank filter values mean all", func(t *testing.T) {
		got := FilterAndSort(fixtures(), Criteria{Sort: SortNewest})
		assert.Len(t, got, 4)
	})

	t.Run("Popular sorts by useful count and is stable", func(t *testing.T) {
		c := DefaultCriteria()
		c.Sort = SortPopular
		got := FilterAndSort(fixtures(), c)
		assert.Equal(t, []string{"b", "d", "a", "c"}, ids(got))
	})

	t.Run("Favorites sorts by favorite count and is stable", func(t *testing.T) {
		c := DefaultCriteria()
		c.Sort = SortFavorites
		got := FilterAndSort(fixtures(), c)
		assert.Equal(t, []string{"c", "a", "b", "d"}, ids(got))
	})

	t.Run("Unknown sort keeps input order", func(t *testing.T) {
		c := DefaultCriteria()
		c.Sort = "alphabetical"
		got := FilterAndSort(fixtures(), c)
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
	})

	t.Run("Input is not modified", func(t *testing.T) {
		in := fixtures()
		_ = FilterAndSort(in, Criteria{Sort: SortPopular})
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in))
	})

	t.Run("Empty collection", func(t *testing.T) {
		assert.Empty(t, FilterAndSort(nil, DefaultCriteria()))
	})
}
