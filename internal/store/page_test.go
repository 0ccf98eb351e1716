package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest(t *testing.T) {
	tests := []struct {
		name       string
		page       PageRequest
		wantOffset int
		wantLimit  any
	}{
		{name: "first page", page: PageRequest{Page: 1, Size: 10}, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: PageRequest{Page: 3, Size: 10}, wantOffset: 20, wantLimit: 10},
		{name: "zero page treated as first", page: PageRequest{Page: 0, Size: 5}, wantOffset: 0, wantLimit: 5},
		{name: "unbounded", page: All, wantOffset: 0, wantLimit: nil},
		{name: "unbounded ignores page", page: PageRequest{Page: 4}, wantOffset: 0, wantLimit: nil},
		{name: "huge page saturates", page: PageRequest{Page: math.MaxInt64/5 + 1, Size: 10}, wantOffset: math.MaxInt, wantLimit: 10},
		{name: "largest page", page: PageRequest{Page: math.MaxInt, Size: 10}, wantOffset: math.MaxInt, wantLimit: 10},
		{name: "last exact page", page: PageRequest{Page: math.MaxInt/10 + 1, Size: 10}, wantOffset: math.MaxInt / 10 * 10, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOffset, tt.page.Offset())
			assert.Equal(t, tt.wantLimit, tt.page.Limit())
		})
	}
}
