package resource

// DefaultPageSize is the number of resources shown per page.
const DefaultPageSize = 12

// maxPlainButtons is the largest page count rendered without ellipses.
const maxPlainButtons = 5

// ButtonKind tells the renderer what a PageButton is.
type ButtonKind string

const (
	ButtonPage     ButtonKind = "page"
	ButtonEllipsis ButtonKind = "ellipsis"
)

// PageButton is one element of the page-number control.
// Number and Active are zero for ellipsis markers.
type PageButton struct {
	Kind   ButtonKind
	Number int
	Active bool
}

// Page is the visible slice of a result plus the data needed to render the
// page controls.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	Total       int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	Buttons     []PageButton
}

// TotalPages returns ceil(total/pageSize), never less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate cuts page currentPage (1-based) out of seq. It does not clamp
// currentPage; an out-of-range page yields an empty Items slice.
func Paginate[T any](seq []T, pageSize, currentPage int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(len(seq), pageSize)

	start := (currentPage - 1) * pageSize
	start = max(0, min(start, len(seq)))
	end := min(start+pageSize, len(seq))

	items := make([]T, end-start)
	copy(items, seq[start:end])

	return Page[T]{
		Items:       items,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		Total:       len(seq),
		TotalPages:  totalPages,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		Buttons:     PageButtons(totalPages, currentPage),
	}
}

// PageButtons lays out the page-number control.
//
//	totalPages <= 5             1 2 3 4 5
//	currentPage <= 3            1 2 3 4 … N
//	currentPage >= N-2          1 … N-3 N-2 N-1 N
//	otherwise                   1 … c-1 c c+1 … N
func PageButtons(totalPages, currentPage int) []PageButton {
	var pages []int
	switch {
	case totalPages <= maxPlainButtons:
		for p := 1; p <= totalPages; p++ {
			pages = append(pages, p)
		}
	case currentPage <= 3:
		pages = []int{1, 2, 3, 4, 0, totalPages}
	case currentPage >= totalPages-2:
		pages = []int{1, 0, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	default:
		pages = []int{1, 0, currentPage - 1, currentPage, currentPage + 1, 0, totalPages}
	}

	buttons := make([]PageButton, 0, len(pages))
	for _, p := range pages {
		if p == 0 {
			buttons = append(buttons, PageButton{Kind: ButtonEllipsis})
			continue
		}
		buttons = append(buttons, PageButton{
			Kind:   ButtonPage,
			Number: p,
			Active: p == currentPage,
		})
	}
	return buttons
}
