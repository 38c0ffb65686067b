package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/locals", nil)
	p := ParsePageQuery(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Zero(t, p.Offset())
}

func TestParsePageQueryClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/locals?page=3&limit=500", nil)
	p := ParsePageQuery(r)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPageSize, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestParsePageQueryIgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/locals?page=-2&limit=abc", nil)
	p := ParsePageQuery(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)
}

func TestTotalPages(t *testing.T) {
	p := PageQuery{Page: 1, Limit: 20}

	assert.Zero(t, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
	assert.Equal(t, 5, p.TotalPages(100))
}
