package request

import (
	"net/url"

	"cinebook/pkg/utils"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginatedRequest holds the limit/offset pair of a list query.
type PaginatedRequest struct {
	PageLimit  int `json:"limit"`
	PageOffset int `json:"offset"`
}

func (p PaginatedRequest) Offset() int {
	if p.PageOffset < 0 {
		return 0
	}
	return p.PageOffset
}

func (p PaginatedRequest) Limit() int {
	if p.PageLimit < 1 {
		return DefaultLimit
	}
	if p.PageLimit > MaxLimit {
		return MaxLimit
	}
	return p.PageLimit
}

// PaginationFromQuery reads ?limit= and ?offset=, falling back to defaults on
// missing or malformed values.
func PaginationFromQuery(q url.Values) PaginatedRequest {
	return PaginatedRequest{
		PageLimit:  utils.ParseInt(q.Get("limit"), DefaultLimit),
		PageOffset: utils.ParseInt(q.Get("offset"), 0),
	}
}
