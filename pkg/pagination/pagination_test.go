package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		in   PaginationParams
		want PaginationParams
	}{
		{"zero values", PaginationParams{}, PaginationParams{Page: 1, PerPage: 15}},
		{"negative page", PaginationParams{Page: -3, PerPage: 10}, PaginationParams{Page: 1, PerPage: 10}},
		{"per page capped", PaginationParams{Page: 2, PerPage: 500}, PaginationParams{Page: 2, PerPage: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	result := Paginate(items, &PaginationParams{Page: 2, PerPage: 2})
	assert.Equal(t, []string{"c", "d"}, result.Items)
	assert.Equal(t, int64(5), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)

	last := Paginate(items, &PaginationParams{Page: 3, PerPage: 2})
	assert.Equal(t, []string{"e"}, last.Items)
	assert.False(t, last.Pagination.HasNext)

	beyond := Paginate(items, &PaginationParams{Page: 9, PerPage: 2})
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
}

func TestPaginateDoesNotAlias(t *testing.T) {
	items := []int{1, 2, 3}
	result := Paginate(items, nil)
	result.Items[0] = 42

	assert.Equal(t, 1, items[0])
}
