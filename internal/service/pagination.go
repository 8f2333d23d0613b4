package service

const (
	// DefaultPerPage is used when the client does not send a page size.
	DefaultPerPage = 10
	// MaxPerPage caps the page size.
	MaxPerPage = 50
	// PageGroupSize is how many page numbers the client shows at once.
	PageGroupSize = 10
)

// Pagination describes one page of a list and the page-number strip around it.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	StartPage  int   `json:"start_page"`
	EndPage    int   `json:"end_page"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// NormalizePage coerces requested page and size into valid ranges.
// Non-positive pages become 1; sizes are clamped to [1, MaxPerPage].
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPerPage {
		limit = MaxPerPage
	}
	return page, limit
}

// NewPagination computes page metadata for total rows. page and limit must
// already be normalized; page is clamped down to the last page.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	startPage := ((page-1)/PageGroupSize)*PageGroupSize + 1
	endPage := startPage + PageGroupSize - 1
	if endPage > totalPages {
		endPage = totalPages
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		StartPage:  startPage,
		EndPage:    endPage,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Offset is the number of rows to skip for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
