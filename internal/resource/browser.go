package resource

// Browser is the criteria and page a visitor is currently looking at.
type Browser struct {
	criteria Criteria
	page     int
}

// NewBrowser starts on page 1 of c.
func NewBrowser(c Criteria) *Browser {
	return &Browser{criteria: c.Normalized(), page: 1}
}

func (b *Browser) Criteria() Criteria { return b.criteria }

func (b *Browser) Page() int { return b.page }

// SetCriteria replaces the criteria and returns to page 1.
func (b *Browser) SetCriteria(c Criteria) {
	b.criteria = c.Normalized()
	b.page = 1
}

// GoTo moves to page if it lies within [1, max(1,totalPages)] and reports
// whether it moved.
func (b *Browser) GoTo(page, totalPages int) bool {
	if page < 1 || page > max(1, totalPages) {
		return false
	}
	b.page = page
	return true
}

// Next advances one page unless already on the last one.
func (b *Browser) Next(totalPages int) bool {
	return b.GoTo(b.page+1, totalPages)
}

// Prev goes back one page unless already on the first one.
func (b *Browser) Prev() bool {
	if b.page <= 1 {
		return false
	}
	b.page--
	return true
}
