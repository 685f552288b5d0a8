package app

// Pagination submenu choices.
const (
	OptionPrevPage = "Previous page"
	OptionNextPage = "Next page"
	OptionBack     = "Back to main menu"
)

// Pagination tracks the current page of a table being browsed. Page 0 is the
// first page.
type Pagination struct {
	PageSize     int
	TotalRecords int64
	Page         int
}

// NewPagination starts at the first page.
func NewPagination(totalRecords int64, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultLimit
	}
	return Pagination{PageSize: pageSize, TotalRecords: totalRecords}
}

// TotalPages is ceil(TotalRecords / PageSize).
func (p Pagination) TotalPages() int {
	if p.TotalRecords <= 0 || p.PageSize <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((p.TotalRecords + size - 1) / size)
}

// Offset is the row offset of the current page.
func (p Pagination) Offset() int {
	return p.Page * p.PageSize
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages()-1
}

// Next moves one page forward if possible.
func (p Pagination) Next() Pagination {
	if p.HasNext() {
		p.Page++
	}
	return p
}

// Prev moves one page back if possible.
func (p Pagination) Prev() Pagination {
	if p.HasPrev() {
		p.Page--
	}
	return p
}

// Options returns the navigation choices for the current page. Choices that
// do not apply are left out rather than disabled.
func (p Pagination) Options() []string {
	var opts []string
	if p.HasPrev() {
		opts = append(opts, OptionPrevPage)
	}
	if p.HasNext() {
		opts = append(opts, OptionNextPage)
	}
	return append(opts, OptionBack)
}
