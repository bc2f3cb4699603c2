package resource

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

//go:embed seed.json
var seedCatalog []byte

// Catalog is the shared, read-only collection browsed by every visitor.
type Catalog struct {
	items []Resource
	byID  map[string]int
}

// NewCatalog wraps items. Ids must be unique.
func NewCatalog(items []Resource) (*Catalog, error) {
	byID := make(map[string]int, len(items))
	for i, r := range items {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		byID[r.ID] = i
	}
	return &Catalog{items: slices.Clone(items), byID: byID}, nil
}

// LoadCatalog reads a JSON array of resources from path, or the built-in
// seed dataset when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := seedCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		raw = b
	}

	var items []Resource
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(items)
}

// All returns the catalog in seed order.
func (c *Catalog) All() []Resource {
	return slices.Clone(c.items)
}

// Get looks up a catalog entry by id.
func (c *Catalog) Get(id string) (Resource, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Resource{}, false
	}
	return c.items[i], true
}

// Len is the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// FacetCount is one selectable filter value and how many resources carry it.
type FacetCount struct {
	Value string
	Count int
}

// Facets are the filter values present in a collection, in first-seen order.
type Facets struct {
	Categories   []FacetCount
	Technologies []FacetCount
	Languages    []FacetCount
}

// CollectFacets walks collection once and counts every category,
// technology and language.
func CollectFacets(collection []Resource) Facets {
	var cats, techs, langs facetCounter
	for _, r := range collection {
		cats.add(string(r.Category))
		for _, t := range r.Technologies {
			techs.add(t)
		}
		for _, l := range r.Languages {
			langs.add(l)
		}
	}
	return Facets{
		Categories:   cats.list(),
		Technologies: techs.list(),
		Languages:    langs.list(),
	}
}

type facetCounter struct {
	order []string
	count map[string]int
}

func (f *facetCounter) add(v string) {
	if f.count == nil {
		f.count = make(map[string]int)
	}
	if _, seen := f.count[v]; !seen {
		f.order = append(f.order, v)
	}
	f.count[v]++
}

func (f *facetCounter) list() []FacetCount {
	out := make([]FacetCount, len(f.order))
	for i, v := range f.order {
		out[i] = FacetCount{Value: v, Count: f.count[v]}
	}
	return out
}
