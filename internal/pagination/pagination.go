// Package pagination defines the 1-indexed page query and the paginated
// response envelope returned by the list endpoints.
package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

// Query is a 1-indexed page request.
type Query struct {
	Page     int
	PageSize int
}

var (
	ErrInvalidPage     = errors.New("pagina invalida")
	ErrInvalidPageSize = errors.New("tamanhoPagina invalido")
)

// FromRequest reads pagina/tamanhoPagina from the query string.
// Absent parameters default to page 1, size 10; present parameters must
// be integers ≥ 1.
func FromRequest(r *http.Request) (Query, error) {
	q := Query{Page: 1, PageSize: 10}

	if s := r.URL.Query().Get("pagina"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return Query{}, ErrInvalidPage
		}
		q.Page = v
	}

	if s := r.URL.Query().Get("tamanhoPagina"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return Query{}, ErrInvalidPageSize
		}
		q.PageSize = v
	}

	return q, nil
}

// Offset returns the number of rows to skip for this page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	TotalItems int `json:"qntdItens"`
	TotalPages int `json:"paginas"`
	Items      []T `json:"items"`
}

// NewPage builds a Page from the matched row count and the current page
// of items.
func NewPage[T any](totalItems int, pageSize int, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, pageSize),
		Items:      items,
	}
}

// TotalPages is ceil(totalItems/pageSize), never below 1: an empty
// result still renders as a single empty page.
func TotalPages(totalItems, pageSize int) int {
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
