// Package pagination normalizes page/limit query parameters for list
// endpoints. Orders, products and invoices are all listed through the same
// page-number scheme, so parsing lives here rather than in each handler.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	// MaxLimit caps a single page; listings join their line items, so an
	// unbounded limit gets expensive quickly.
	MaxLimit = 100
)

// Params is the normalized result of Parse. Offset is precomputed for the
// repositories, which page with LIMIT/OFFSET.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the request query. Missing, malformed or
// out-of-range values fall back to the defaults; limit is clamped to
// MaxLimit.
func Parse(c *gin.Context) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
