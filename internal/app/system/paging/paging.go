// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the request does not specify one.
const DefaultLimit = 6

// MaxLimit caps the requested page size so a client cannot ask for the
// whole collection in one page.
const MaxLimit = 50

// Page holds the parsed ?page=&limit= window. Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

// Parse extracts page and limit query parameters, clamping to sane values.
// Missing or invalid values fall back to page 1 and DefaultLimit.
func Parse(r *http.Request) Page {
	p := Page{Page: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
			if p.Limit > MaxLimit {
				p.Limit = MaxLimit
			}
		}
	}
	return p
}

// Skip returns the number of documents to skip for Mongo Find().SetSkip.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Limit64 returns the page size as int64 for Mongo Find().SetLimit.
func (p Page) Limit64() int64 {
	return int64(p.Limit)
}
