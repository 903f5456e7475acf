// Package pagination implements page-number pagination and the response
// envelopes used by the list endpoints.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// PageParam is the query parameter carrying the 1-based page number.
const PageParam = "page"

// InvalidPageMessage is the detail returned for an out-of-range page.
const InvalidPageMessage = "Invalid page."

// ErrInvalidPage reports a page number that is not an integer or lies
// outside the result set.
func ErrInvalidPage() error {
	return apperrors.NewNotFoundError(InvalidPageMessage)
}

// Params is a resolved page request.
type Params struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the number of rows to fetch.
func (p Params) Limit() int {
	return p.PageSize
}

// Parse reads the page number and optional page size from q.
// sizeParam may be empty when the endpoint has a fixed page size. Invalid or
// non-positive sizes fall back to defaultSize and sizes above maxSize are
// capped. A non-integer page is an ErrInvalidPage.
func Parse(q url.Values, sizeParam string, defaultSize, maxSize int) (Params, error) {
	p := Params{Page: 1, PageSize: defaultSize}

	if raw := q.Get(PageParam); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage()
		}
		p.Page = page
	}

	if sizeParam != "" {
		if raw := q.Get(sizeParam); raw != "" {
			if size, err := strconv.Atoi(raw); err == nil && size > 0 {
				p.PageSize = size
			}
		}
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}

	return p, nil
}

// TotalPages returns the number of pages for total items. An empty result
// still has one page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Validate reports ErrInvalidPage when p.Page lies past the last page.
func (p Params) Validate(total int) error {
	if p.Page > TotalPages(total, p.PageSize) {
		return ErrInvalidPage()
	}
	return nil
}

// Clamp moves a page outside [1, TotalPages] to the last page.
func (p Params) Clamp(total int) Params {
	if last := TotalPages(total, p.PageSize); p.Page < 1 || p.Page > last {
		p.Page = last
	}
	return p
}

// NextLink returns the absolute URL of the following page, or nil on the
// last page.
func NextLink(r *http.Request, p Params, total int) *string {
	if p.Page >= TotalPages(total, p.PageSize) {
		return nil
	}
	link := pageURL(r, p.Page+1)
	return &link
}

// PreviousLink returns the absolute URL of the preceding page, or nil on the
// first page. The link to page one carries no page parameter.
func PreviousLink(r *http.Request, p Params) *string {
	if p.Page <= 1 {
		return nil
	}
	link := pageURL(r, p.Page-1)
	return &link
}

func pageURL(r *http.Request, page int) string {
	u := url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}

	q := r.URL.Query()
	if page <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
