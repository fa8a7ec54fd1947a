package domain

import (
	"strconv"
	"strings"
)

// PageRequest selects one page of a form's submissions.
type PageRequest struct {
	Form    string
	Page    int
	PerPage int
}

// ParsePageRequest builds a PageRequest from raw query values. Values that are
// absent or not integers take the defaults, numeric values are clamped.
func ParsePageRequest(form, page, perPage string) PageRequest {
	req := PageRequest{
		Form:    strings.TrimSpace(form),
		Page:    parseIntOr(page, DefaultPage),
		PerPage: parseIntOr(perPage, DefaultPerPage),
	}
	return req.Normalize()
}

// Normalize clamps Page to at least 1 and PerPage to [MinPerPage, MaxPerPage].
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < MinPerPage {
		r.PerPage = MinPerPage
	}
	if r.PerPage > MaxPerPage {
		r.PerPage = MaxPerPage
	}
	return r
}

func parseIntOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
