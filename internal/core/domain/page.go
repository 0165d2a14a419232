package domain

import "math"

// PageRequest - zero-based page index and page size.
type PageRequest struct {
	Page int
	Size int
}

// Offset is the number of rows to skip for the requested page. It saturates
// at math.MaxInt, which is past the end of any result.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Validate checks the bounds; maxSize <= 0 means no upper bound.
func (p PageRequest) Validate(maxSize int) error {
	if p.Page < 0 {
		return NewValidationError("page must be zero or positive")
	}
	if p.Size < 1 {
		return NewValidationError("page size must be at least 1")
	}
	if maxSize > 0 && p.Size > maxSize {
		return NewValidationError("page size is too large")
	}
	return nil
}

// Page - one slice of an ordered result plus totals computed over the whole set.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalCount int64
	TotalPages int
}

// NewPage fills the derived totals.
func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalCount: total,
		TotalPages: pages,
	}
}
