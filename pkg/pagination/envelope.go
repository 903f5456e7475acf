package pagination

import (
	"net/http"
	"strconv"
)

// Page is the standard list envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the standard envelope for one page of results.
func NewPage[T any](r *http.Request, p Params, total int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{
		Count:    total,
		Next:     NextLink(r, p, total),
		Previous: PreviousLink(r, p),
		Results:  results,
	}
}

// ServiceMeta is the pagination block of the service list envelope.
type ServiceMeta struct {
	TotalItems   int     `json:"total_items"`
	PerPage      int     `json:"per_page"`
	CurrentPage  int     `json:"currentPage"`
	TotalPages   int     `json:"totalPages"`
	From         int     `json:"from"`
	To           int     `json:"to"`
	NextPage     *string `json:"next_page"`
	PreviousPage *string `json:"previous_page"`
}

// ServicePage is the service list envelope. Max and Min are the highest and
// lowest price over the whole catalogue.
type ServicePage[T any, N any] struct {
	Pagination   ServiceMeta `json:"pagination"`
	Data         []T         `json:"data"`
	UserServices any         `json:"user_services"`
	Max          N           `json:"max"`
	Min          N           `json:"min"`
}

// NewServicePage builds the service list envelope.
func NewServicePage[T any, N any](r *http.Request, p Params, total int, data []T, max, min N) ServicePage[T, N] {
	if data == nil {
		data = []T{}
	}

	from, to := 0, 0
	if total > 0 {
		from = p.Offset() + 1
		to = p.Offset() + len(data)
	}

	return ServicePage[T, N]{
		Pagination: ServiceMeta{
			TotalItems:   total,
			PerPage:      p.PageSize,
			CurrentPage:  p.Page,
			TotalPages:   TotalPages(total, p.PageSize),
			From:         from,
			To:           to,
			NextPage:     NextLink(r, p, total),
			PreviousPage: PreviousLink(r, p),
		},
		Data: data,
		Max:  max,
		Min:  min,
	}
}

// ArticleMeta is the pagination block of the article list envelope.
type ArticleMeta struct {
	TotalItems  int    `json:"total_items"`
	PerPage     string `json:"per_page"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

// ArticlePage is the article list envelope.
type ArticlePage[T any] struct {
	Status     string      `json:"status"`
	Pagination ArticleMeta `json:"pagination"`
	Data       []T         `json:"data"`
}

// NewArticlePage builds the article list envelope. p is expected to be
// clamped already.
func NewArticlePage[T any](p Params, total int, data []T) ArticlePage[T] {
	if data == nil {
		data = []T{}
	}
	return ArticlePage[T]{
		Status: "true",
		Pagination: ArticleMeta{
			TotalItems:  total,
			PerPage:     strconv.Itoa(p.PageSize),
			CurrentPage: p.Page,
			TotalPages:  TotalPages(total, p.PageSize),
		},
		Data: data,
	}
}
