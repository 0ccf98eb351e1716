package service

import "github.com/phrazzld/nestly-api/internal/store"

// Page is one page of an ordered listing.
type Page[T any] struct {
	Content    []T
	Number     int
	Size       int
	TotalItems int
}

// TotalPages returns the number of pages needed for TotalItems.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalItems == 0 {
		return 0
	}
	return (p.TotalItems + p.Size - 1) / p.Size
}

func newPage[T any](items []T, req store.PageRequest, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Content:    items,
		Number:     req.Page,
		Size:       req.Size,
		TotalItems: total,
	}
}
