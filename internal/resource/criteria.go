package resource

import "strings"

// All is the filter value that disables a category, technology or language filter.
const All = "all"

// SortKey selects the order of a filtered result.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortFavorites SortKey = "favorites"
)

// Criteria is a snapshot of the user's current search and filter selections.
// It is a value type; changing a selection means building a new Criteria.
type Criteria struct {
	SearchText string
	Category   string
	Technology string
	Language   string
	Sort       SortKey
}

// DefaultCriteria matches everything, newest first.
func DefaultCriteria() Criteria {
	return Criteria{
		Category:   All,
		Technology: All,
		Language:   All,
		Sort:       SortNewest,
	}
}

// Normalized returns c with blank filter selections replaced by All.
// The sort key is left untouched: an unknown key means "keep input order".
func (c Criteria) Normalized() Criteria {
	if strings.TrimSpace(c.Category) == "" {
		c.Category = All
	}
	if strings.TrimSpace(c.Technology) == "" {
		c.Technology = All
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = All
	}
	return c
}
