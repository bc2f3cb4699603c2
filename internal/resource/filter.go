package resource

import (
	"slices"
	"sort"
	"strings"
)

// FilterAndSort returns the resources of collection that match c, ordered by
// c.Sort. Equal keys keep their input order. collection is not modified.
func FilterAndSort(collection []Resource, c Criteria) []Resource {
	c = c.Normalized()
	needle := strings.ToLower(c.SearchText)

	result := make([]Resource, 0, len(collection))
	for _, r := range collection {
		if matches(r, c, needle) {
			result = append(result, r)
		}
	}

	switch c.Sort {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DateAdded.After(result[j].DateAdded)
		})
	case SortPopular:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UsefulCount > result[j].UsefulCount
		})
	case SortFavorites:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].FavoriteCount > result[j].FavoriteCount
		})
	}

	return result
}

// matches applies every filter; needle is the lower-cased search text.
func matches(r Resource, c Criteria, needle string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(r.Title), needle) &&
		!strings.Contains(strings.ToLower(r.Description), needle) {
		return false
	}
	if c.Category != All && string(r.Category) != c.Category {
		return false
	}
	if c.Technology != All && !slices.Contains(r.Technologies, c.Technology) {
		return false
	}
	if c.Language != All && !slices.Contains(r.Languages, c.Language) {
		return false
	}
	return true
}
