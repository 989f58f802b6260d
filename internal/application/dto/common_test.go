package dto_test

import (
	"testing"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		pageSize   int
		totalCount int
		wantPages  int
	}{
		{"división exacta", 1, 5, 10, 2},
		{"página parcial al final", 1, 5, 11, 3},
		{"colección vacía", 1, 5, 0, 0},
		{"menos elementos que una página", 1, 10, 3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dto.NewPagination(tc.page, tc.pageSize, tc.totalCount)
			assert.Equal(t, tc.page, got.Page)
			assert.Equal(t, tc.pageSize, got.PageSize)
			assert.Equal(t, tc.totalCount, got.TotalCount)
			assert.Equal(t, tc.wantPages, got.TotalPages)
		})
	}
}
