package queries

import (
	"errors"

	"broker/internal/pkg/guard"
)

var ErrListPendingOrdersQueryIsNotConstructed = errors.New(
	"ListPendingOrdersQuery must be created via NewListPendingOrdersQuery constructor",
)

// ListPendingOrdersQuery retrieves unclaimed orders, oldest first, so
// couriers see the longest-waiting work at the top.
type ListPendingOrdersQuery struct {
	limit int
	skip  int

	guard guard.ConstructorGuard
}

// NewListPendingOrdersQuery creates a paginated query over pending orders.
// A zero limit selects the default page size.
func NewListPendingOrdersQuery(limit, skip int) (ListPendingOrdersQuery, error) {
	limit, skip, err := normalizePage(limit, skip)
	if err != nil {
		return ListPendingOrdersQuery{}, err
	}

	return ListPendingOrdersQuery{
		limit: limit,
		skip:  skip,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListPendingOrdersQueryIsNotConstructed)
}

// Limit returns the page size.
func (q ListPendingOrdersQuery) Limit() int {
	return q.limit
}

// Skip returns the offset into the result set.
func (q ListPendingOrdersQuery) Skip() int {
	return q.skip
}

// ListOrdersResponse is one page of order projections.
type ListOrdersResponse struct {
	Orders []OrderResponse
	Page   PageInfo
}
