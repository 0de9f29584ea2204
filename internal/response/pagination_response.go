package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NewPagination describes the 1-based page of a list of totalItems. From and
// To are 1-based positions of the first and last item on the page, both 0
// when the page is empty.
func NewPagination(page, pageSize int, totalItems int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	totalPages := (totalItems + int64(pageSize) - 1) / int64(pageSize)
	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasMore:    int64(page) < totalPages,
	}

	offset := int64((page - 1) * pageSize)
	if offset < totalItems {
		p.From = int(offset) + 1
		p.To = int(min(offset+int64(pageSize), totalItems))
	}
	return p
}

// Bounds returns the slice bounds of the page, safe to use on the list.
func (p Pagination) Bounds() (start, end int) {
	if p.From == 0 {
		return 0, 0
	}
	return p.From - 1, p.To
}
