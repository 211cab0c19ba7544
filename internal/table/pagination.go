package table

const (
	// DefaultPageSize matches the submitted-log table default.
	DefaultPageSize = 50
	// MaxPageSize caps a single page fetch.
	MaxPageSize = 500
)

// Pagination describes one server-side page request.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalized clamps the page size into [1, MaxPageSize], defaulting to
// DefaultPageSize when unset.
func (pagination Pagination) Normalized() Pagination {
	normalized := pagination
	if normalized.PageSize <= 0 {
		normalized.PageSize = DefaultPageSize
	}
	if normalized.PageSize > MaxPageSize {
		normalized.PageSize = MaxPageSize
	}
	if normalized.Page < 1 {
		normalized.Page = 1
	}
	return normalized
}

// TotalPages computes the page count for totalCount records.
func (pagination Pagination) TotalPages(totalCount int) int {
	normalized := pagination.Normalized()
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + normalized.PageSize - 1) / normalized.PageSize
}

// Clamp bounds the requested page to [1, totalPages], or to 1 when there are
// zero records.
func (pagination Pagination) Clamp(totalCount int) Pagination {
	normalized := pagination.Normalized()
	totalPages := normalized.TotalPages(totalCount)
	if totalPages == 0 {
		normalized.Page = 1
		return normalized
	}
	if normalized.Page > totalPages {
		normalized.Page = totalPages
	}
	return normalized
}

// Skip converts the page number into the backend's record offset.
func (pagination Pagination) Skip() int {
	normalized := pagination.Normalized()
	return (normalized.Page - 1) * normalized.PageSize
}
