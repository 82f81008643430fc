// Package paging parses skip/limit query parameters for list endpoints.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not pass one.
const DefaultLimit = 25

// MaxLimit caps the page size regardless of what the caller asks for.
const MaxLimit = 100

// Page holds parsed skip/limit values ready for Mongo Find options.
type Page struct {
	Skip  int64
	Limit int64
}

// Parse reads "skip" and "limit" from the request query. Invalid or missing
// values fall back to 0 / DefaultLimit; limit is clamped to MaxLimit.
func Parse(r *http.Request) Page {
	p := Page{Skip: 0, Limit: DefaultLimit}

	if s := query.Get(r, "skip"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			p.Skip = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
