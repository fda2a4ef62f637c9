package service

// PaginationMeta summarizes one page of a list view.
type PaginationMeta struct {
	TotalCount  int64 `json:"totalCount"`
	ReturnCount int   `json:"returnCount"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	HasPrevPage bool  `json:"hasPrevPage"`
	HasNextPage bool  `json:"hasNextPage"`
}

// NewPaginationMeta computes the pagination summary for a page. hasNextPage
// is true exactly when page*limit < totalCount.
func NewPaginationMeta(page, limit, returned int, total int64) PaginationMeta {
	return PaginationMeta{
		TotalCount:  total,
		ReturnCount: returned,
		Page:        page,
		Limit:       limit,
		HasPrevPage: page > 1,
		HasNextPage: int64(page*limit) < total,
	}
}
