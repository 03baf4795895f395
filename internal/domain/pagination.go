package domain

import "math"

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize, saturating at math.MaxInt instead of overflowing.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) slice bounds of the current page within total items.
// A page past the end yields (total, total).
func (p PaginationParams) Bounds(total int) (start, end int) {
	start = p.Offset()
	if start >= total {
		return total, total
	}
	if p.PageSize < 1 || p.PageSize > total-start {
		return start, total
	}
	return start, start + p.PageSize
}
