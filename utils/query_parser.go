package utils

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// ParsePagination extracts page and page_size query parameters, clamping to
// sane bounds.
func ParsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = DefaultPageSize

	if str := r.URL.Query().Get("page"); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			page = v
		}
	}

	if str := r.URL.Query().Get("page_size"); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}

	return page, pageSize
}
