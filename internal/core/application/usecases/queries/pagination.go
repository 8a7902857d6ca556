package queries

import (
	"broker/internal/pkg/errs"
)

const (
	// DefaultLimit is the page size used when a query does not specify one.
	DefaultLimit = 20
	// MaxLimit caps the page size a single query may request.
	MaxLimit = 100
)

// PageInfo describes the slice of a result set a paginated query returned.
type PageInfo struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Skip    int   `json:"skip"`
	HasMore bool  `json:"has_more"`
}

// NewPageInfo builds pagination metadata for a result set of the given size.
func NewPageInfo(total int64, limit, skip int) PageInfo {
	return PageInfo{
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: int64(skip+limit) < total,
	}
}

// normalizePage validates limit and skip, substituting the default page size
// when limit is zero.
func normalizePage(limit, skip int) (int, int, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return 0, 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	if skip < 0 {
		return 0, 0, errs.NewValueIsOutOfRangeError("skip", skip, 0, int(^uint(0)>>1))
	}
	return limit, skip, nil
}
