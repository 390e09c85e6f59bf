package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/pkg/response"
)

const (
	DefaultPage = 1
	MaxSize     = 100
)

// Query holds validated pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts page/pageSize from the request query. Each content
// kind supplies its own default page size.
func FromContext(c *gin.Context, defaultSize int) Query {
	if defaultSize < 1 {
		defaultSize = 10
	}
	page := parseIntOr(c.Query("page"), DefaultPage)
	size := parseIntOr(c.Query("pageSize"), defaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// Offset returns the row offset for the current page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// Meta builds the response metadata for a total row count.
// total=0 yields totalPages=0.
func (q Query) Meta(total int64) response.Pagination {
	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Page:       q.Page,
		PageSize:   q.Size,
		Total:      total,
		TotalPages: totalPages,
	}
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
