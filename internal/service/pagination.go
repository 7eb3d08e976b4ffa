package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginate converts a 1-based page number and page size into an SQL
// offset/limit pair, clamping out-of-range values.
func paginate(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return (page - 1) * pageSize, pageSize
}

// TotalPages computes the page count for a paginated listing.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
