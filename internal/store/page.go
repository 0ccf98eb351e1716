package store

import "math"

// PageRequest selects a window of an ordered result set.
// Page is 1-based. A Size of zero or less means "no limit".
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip. Pages too far out to address
// saturate at math.MaxInt, which still selects nothing.
func (p PageRequest) Offset() int {
	if p.Size <= 0 || p.Page <= 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

// Limit returns the LIMIT argument for a query. A nil limit is LIMIT NULL,
// which PostgreSQL treats as unbounded.
func (p PageRequest) Limit() any {
	if p.Size <= 0 {
		return nil
	}
	return p.Size
}

// All requests the whole result set.
var All = PageRequest{}
