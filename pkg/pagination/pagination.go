package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 20
	// MaxPerPage caps how many rows any listing can request.
	MaxPerPage = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Page describes one page of results in list responses.
type Page struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// FromQuery reads page and perPage from a URL query, applying defaults.
func FromQuery(values url.Values) Params {
	params := Params{Page: 1, PerPage: DefaultPerPage}
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}
	if raw := values.Get("perPage"); raw != "" {
		if perPage, err := strconv.Atoi(raw); err == nil && perPage > 0 {
			params.PerPage = perPage
		}
	}
	return params.Normalize()
}

// Normalize enforces the configured defaults and maximum page size.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for SQL queries.
func (p Params) Offset() int {
	normalized := p.Normalize()
	return (normalized.Page - 1) * normalized.PerPage
}

// Limit returns the row limit for SQL queries.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// NewPage assembles the page descriptor for a listing response.
func NewPage(params Params, total int64) Page {
	normalized := params.Normalize()
	totalPages := int(total) / normalized.PerPage
	if int(total)%normalized.PerPage != 0 {
		totalPages++
	}
	return Page{
		Page:       normalized.Page,
		PerPage:    normalized.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
