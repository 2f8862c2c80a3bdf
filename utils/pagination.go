package utils

import "strconv"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageParams holds the normalized page/limit pair for an offset query.
type PageParams struct {
	Page  int
	Limit int
}

// NormalizePageParams parses raw query values, flooring page at 1 and
// clamping limit to [1, MaxPageLimit].
func NormalizePageParams(pageRaw, limitRaw string) PageParams {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return PageParams{Page: page, Limit: limit}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the count envelope returned next to every page of rows.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
}

// NewPagination builds the envelope: totalPages == ceil(total/limit),
// hasNextPage == page < totalPages. A non-positive limit falls back to
// the default so the envelope stays well-defined for hand-built params.
func NewPagination(p PageParams, total int64) Pagination {
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		Page:        p.Page,
		Limit:       p.Limit,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
	}
}
