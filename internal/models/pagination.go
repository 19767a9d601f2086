package models

// Pagination describes one page of a list response.
// HasMore follows page*limit < total, with total computed by a separate count
// under the same filter as the page query.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// NewPagination builds the pagination envelope for a page query.
func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: int64(page)*int64(limit) < total,
	}
}

// Offset returns the skip count for a page query.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
