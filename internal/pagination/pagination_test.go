package pagination_test

import (
	"net/http/httptest"
	"testing"

	"school-service/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"25 rows size 10", 25, 10, 3},
		{"exact multiple", 20, 10, 2},
		{"single page", 3, 10, 1},
		{"zero rows never zero pages", 0, 5, 1},
		{"one row", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.TotalPages(tt.total, tt.pageSize))
		})
	}
}

func TestQueryOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Query{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 10, pagination.Query{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, 40, pagination.Query{Page: 5, PageSize: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	page := pagination.NewPage(25, 10, []string{"a", "b"})
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []string{"a", "b"}, page.Items)

	empty := pagination.NewPage[string](0, 5, nil)
	assert.Equal(t, 1, empty.TotalPages)
	assert.NotNil(t, empty.Items)
}

func TestFromRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/alunos", nil)
		q, err := pagination.FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, pagination.Query{Page: 1, PageSize: 10}, q)
	})

	t.Run("explicit values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/alunos?pagina=3&tamanhoPagina=25", nil)
		q, err := pagination.FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, pagination.Query{Page: 3, PageSize: 25}, q)
	})

	t.Run("page below one", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/alunos?pagina=0", nil)
		_, err := pagination.FromRequest(r)
		assert.ErrorIs(t, err, pagination.ErrInvalidPage)
	})

	t.Run("size not a number", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/alunos?tamanhoPagina=abc", nil)
		_, err := pagination.FromRequest(r)
		assert.ErrorIs(t, err, pagination.ErrInvalidPageSize)
	})
}
