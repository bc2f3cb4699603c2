package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/request"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/response"
	"github.com/nekogravitycat/dev-resources-backend/internal/resource"
)

type ResourceResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Technologies  []string  `json:"technologies"`
	Languages     []string  `json:"languages"`
	UsefulCount   int       `json:"useful_count"`
	FavoriteCount int       `json:"favorite_count"`
	DateAdded     time.Time `json:"date_added"`
	Author        string    `json:"author,omitempty"`
}

func NewResponse(r resource.Resource) ResourceResponse {
	techs, langs := r.Technologies, r.Languages
	if techs == nil {
		techs = []string{}
	}
	if langs == nil {
		langs = []string{}
	}
	return ResourceResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		URL:           r.URL,
		Type:          string(r.Type),
		Category:      string(r.Category),
		Technologies:  techs,
		Languages:     langs,
		UsefulCount:   r.UsefulCount,
		FavoriteCount: r.FavoriteCount,
		DateAdded:     r.DateAdded,
		Author:        r.Author,
	}
}

func NewPageResponse(p resource.Page[resource.Resource]) response.PageResponse[ResourceResponse] {
	items := make([]ResourceResponse, len(p.Items))
	for i, r := range p.Items {
		items[i] = NewResponse(r)
	}

	buttons := make([]response.PageButton, len(p.Buttons))
	for i, b := range p.Buttons {
		buttons[i] = response.PageButton{Kind: string(b.Kind), Number: b.Number, Active: b.Active}
	}

	return response.NewPageResponse(items, p.CurrentPage, p.PageSize, p.Total).WithButtons(buttons)
}

// ListResourcesRequest is the query string of list endpoints.
type ListResourcesRequest struct {
	request.ListParams
}

// Criteria builds search criteria, using defaultSort when none was given.
func (r *ListResourcesRequest) Criteria(defaultSort resource.SortKey) resource.Criteria {
	sort := resource.SortKey(r.Sort)
	if sort == "" {
		sort = defaultSort
	}
	return resource.Criteria{
		SearchText: r.Query,
		Category:   r.Category,
		Technology: r.Technology,
		Language:   r.Language,
		Sort:       sort,
	}.Normalized()
}

// CriteriaBody replaces the criteria of a browse session.
type CriteriaBody struct {
	Query      string `json:"q" binding:"max=200"`
	Category   string `json:"category"`
	Technology string `json:"technology"`
	Language   string `json:"language"`
	Sort       string `json:"sort" binding:"omitempty,oneof=newest popular favorites"`
}

func (b CriteriaBody) Criteria() resource.Criteria {
	sort := resource.SortKey(b.Sort)
	if sort == "" {
		sort = resource.SortNewest
	}
	return resource.Criteria{
		SearchText: b.Query,
		Category:   b.Category,
		Technology: b.Technology,
		Language:   b.Language,
		Sort:       sort,
	}.Normalized()
}

type CriteriaResponse struct {
	Query      string `json:"q"`
	Category   string `json:"category"`
	Technology string `json:"technology"`
	Language   string `json:"language"`
	Sort       string `json:"sort"`
}

type PageBody struct {
	Page int `json:"page" binding:"required"`
}

type MarkResponse struct {
	Useful   bool `json:"useful"`
	Favorite bool `json:"favorite"`
}

type SessionResponse struct {
	SessionID string                                   `json:"session_id"`
	Criteria  CriteriaResponse                         `json:"criteria"`
	Results   response.PageResponse[ResourceResponse] `json:"results"`
	Marks     map[string]MarkResponse                  `json:"marks"`
}

func NewSessionResponse(v resource.SessionView) SessionResponse {
	marks := make(map[string]MarkResponse, len(v.Marks))
	for id, m := range v.Marks {
		marks[id] = MarkResponse{Useful: m.Useful, Favorite: m.Favorite}
	}
	return SessionResponse{
		SessionID: v.ID,
		Criteria: CriteriaResponse{
			Query:      v.Criteria.SearchText,
			Category:   v.Criteria.Category,
			Technology: v.Criteria.Technology,
			Language:   v.Criteria.Language,
			Sort:       string(v.Criteria.Sort),
		},
		Results: NewPageResponse(v.Page),
		Marks:   marks,
	}
}

type ToggleResponse struct {
	Resource ResourceResponse `json:"resource"`
	MarkResponse
}

type FacetResponse struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type FacetsResponse struct {
	Categories   []FacetResponse `json:"categories"`
	Technologies []FacetResponse `json:"technologies"`
	Languages    []FacetResponse `json:"languages"`
	Types        []string        `json:"types"`
	Sorts        []string        `json:"sorts"`
}

func NewFacetsResponse(f resource.Facets) FacetsResponse {
	conv := func(in []resource.FacetCount) []FacetResponse {
		out := make([]FacetResponse, len(in))
		for i, fc := range in {
			out[i] = FacetResponse{Value: fc.Value, Count: fc.Count}
		}
		return out
	}

	types := make([]string, len(resource.ValidTypes))
	for i, t := range resource.ValidTypes {
		types[i] = string(t)
	}

	return FacetsResponse{
		Categories:   conv(f.Categories),
		Technologies: conv(f.Technologies),
		Languages:    conv(f.Languages),
		Types:        types,
		Sorts: []string{
			string(resource.SortNewest),
			string(resource.SortPopular),
			string(resource.SortFavorites),
		},
	}
}

// ListField accepts either a comma separated string or an array of strings.
type ListField string

func (l *ListField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = ListField(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*l = ListField(strings.Join(arr, ","))
	return nil
}

// ResourceBody is the payload of create and update. Field rules are applied
// by the resource editor so every problem is reported at once.
type ResourceBody struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Technologies  ListField `json:"technologies"`
	Languages     ListField `json:"languages"`
	Author        string    `json:"author"`
	UsefulCount   int       `json:"useful_count"`
	FavoriteCount int       `json:"favorite_count"`
}

func (b ResourceBody) Form() resource.Form {
	return resource.Form{
		Title:         b.Title,
		Description:   b.Description,
		URL:           b.URL,
		Type:          b.Type,
		Category:      b.Category,
		Technologies:  string(b.Technologies),
		Languages:     string(b.Languages),
		Author:        b.Author,
		UsefulCount:   b.UsefulCount,
		FavoriteCount: b.FavoriteCount,
	}
}

// Editor field names follow the persisted JSON; the API speaks snake_case.
var fieldNames = map[string]string{
	"usefulCount":   "useful_count",
	"favoriteCount": "favorite_count",
}

func toFieldErrors(in []resource.FieldError) []apperror.FieldError {
	out := make([]apperror.FieldError, len(in))
	for i, f := range in {
		name := f.Field
		if mapped, ok := fieldNames[name]; ok {
			name = mapped
		}
		out[i] = apperror.FieldError{
			Field:   name,
			Message: strings.Replace(f.Message, f.Field, name, 1),
		}
	}
	return out
}

type ValidateResponse struct {
	Valid  bool                  `json:"valid"`
	Fields []apperror.FieldError `json:"fields"`
}
