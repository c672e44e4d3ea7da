package store

// DefaultPerPage is the fallback page size when the caller passes a
// non-positive perPage to Paginate.
const DefaultPerPage = 10

// Pagination describes one page of a collection.
type Pagination struct {
	TotalItems  int `json:"total_items"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalPages  int `json:"total_pages"`
	Offset      int `json:"offset"`
}

// Paginate computes pagination metadata from a total item count and the
// requested page. It is a pure function and never fails: out-of-range inputs
// are clamped defensively. Request-level validation of page/per_page happens
// at the API boundary; this is the last-resort safety net behind it.
func Paginate(totalItems, currentPage, perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}

	switch {
	case totalPages == 0:
		currentPage = 1
	case currentPage < 1:
		currentPage = 1
	case currentPage > totalPages:
		currentPage = totalPages
	}

	return Pagination{
		TotalItems:  totalItems,
		CurrentPage: currentPage,
		PerPage:     perPage,
		TotalPages:  totalPages,
		Offset:      (currentPage - 1) * perPage,
	}
}
