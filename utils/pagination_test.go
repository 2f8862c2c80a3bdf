package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageParams(t *testing.T) {
	p := NormalizePageParams("", "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)

	p = NormalizePageParams("0", "-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)

	p = NormalizePageParams("3", "500")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPageLimit, p.Limit)

	p = NormalizePageParams("notanumber", "25")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.Limit)
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, PageParams{Page: 5, Limit: 10}.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(PageParams{Page: 1, Limit: 10}, 25)
	assert.Equal(t, int64(25), p.TotalCount)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)

	p = NewPagination(PageParams{Page: 3, Limit: 10}, 25)
	assert.False(t, p.HasNextPage)

	// exact multiple
	p = NewPagination(PageParams{Page: 2, Limit: 10}, 20)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNextPage)

	// empty result set
	p = NewPagination(PageParams{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)

	// hand-built params with a zero limit fall back to the default
	p = NewPagination(PageParams{}, 25)
	assert.Equal(t, DefaultPageLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
}
