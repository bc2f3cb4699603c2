package response

// PageButton is one element of the page-number control. Number is omitted
// for ellipsis markers.
type PageButton struct {
	Kind   string `json:"kind"`
	Number int    `json:"number,omitempty"`
	Active bool   `json:"active,omitempty"`
}

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items      []T          `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	Total      int          `json:"total"`
	TotalPages int          `json:"total_pages"`
	HasPrev    bool         `json:"has_prev"`
	HasNext    bool         `json:"has_next"`
	Buttons    []PageButton `json:"buttons"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return PageResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Buttons:    []PageButton{},
	}
}

// WithButtons sets the page-number control.
func (p PageResponse[T]) WithButtons(buttons []PageButton) PageResponse[T] {
	if buttons != nil {
		p.Buttons = buttons
	}
	return p
}
