package utils

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery carries the normalized page/limit query parameters.
type PageQuery struct {
	Page  int
	Limit int
}

// ParsePageQuery reads page/limit from the request, clamping to sane bounds.
func ParsePageQuery(r *http.Request) PageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	switch {
	case limit > MaxPageSize:
		limit = MaxPageSize
	case limit <= 0:
		limit = DefaultPageSize
	}
	return PageQuery{Page: page, Limit: limit}
}

func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p PageQuery) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}
