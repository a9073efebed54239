package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePage_ClampsNonPositive(t *testing.T) {
	for _, requested := range []int{-100, -1, 0} {
		offset, limit, clamped := ResolvePage(requested)
		assert.Equal(t, 1, clamped, "requested=%d", requested)
		assert.Equal(t, 0, offset, "requested=%d", requested)
		assert.Equal(t, PageSize, limit, "requested=%d", requested)
	}
}

func TestResolvePage_Offsets(t *testing.T) {
	tests := []struct {
		requested  int
		wantOffset int
	}{
		{1, 0},
		{2, 10},
		{3, 20},
		{17, 160},
	}
	for _, tt := range tests {
		offset, limit, clamped := ResolvePage(tt.requested)
		assert.Equal(t, tt.requested, clamped)
		assert.Equal(t, tt.wantOffset, offset)
		assert.Equal(t, PageSize, limit)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		hits int
		want int
	}{
		{0, 0},
		{1, 1},
		{9, 1},
		{10, 1},
		{11, 2},
		{100, 10},
		{101, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.hits), "hits=%d", tt.hits)
	}
}
