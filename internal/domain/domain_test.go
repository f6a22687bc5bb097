package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilterOffset(t *testing.T) {
	tests := []struct {
		name   string
		filter ListFilter
		want   int
	}{
		{"first page", ListFilter{Page: 1, Limit: 50}, 0},
		{"second page", ListFilter{Page: 2, Limit: 50}, 50},
		{"large page", ListFilter{Page: 10, Limit: 25}, 225},
		{"zero page", ListFilter{Page: 0, Limit: 50}, 0},
		{"negative page", ListFilter{Page: -3, Limit: 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Offset())
		})
	}
}

func TestNewListResultPages(t *testing.T) {
	items := []string{"a", "b", "c"}

	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int
	}{
		{"exact division", 100, 50, 2},
		{"with remainder", 101, 50, 3},
		{"single partial page", 3, 50, 1},
		{"empty", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewListResult(items, tt.total, ListFilter{Page: 1, Limit: tt.limit})
			assert.Equal(t, tt.wantPages, res.Pages)
			assert.Equal(t, tt.total, res.Total)
			assert.Equal(t, 1, res.Page)
			assert.Equal(t, items, res.Items)
		})
	}
}

func TestNewListResultUnpaginated(t *testing.T) {
	res := NewListResult([]int{1, 2}, 0, ListFilter{})
	assert.Zero(t, res.Pages)
	assert.Zero(t, res.Page)
}
