package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"
	"broker/internal/pkg/guard"
)

var ErrListCourierOrdersQueryIsNotConstructed = errors.New(
	"ListCourierOrdersQuery must be created via NewListCourierOrdersQuery constructor",
)

// ListCourierOrdersQuery retrieves the orders a courier has claimed, newest
// first, optionally narrowed to a single status.
type ListCourierOrdersQuery struct {
	courierID kernel.UUID
	status    *order.Status
	limit     int
	skip      int

	guard guard.ConstructorGuard
}

// NewListCourierOrdersQuery creates a paginated query over one courier's
// orders. An empty status string means no status filter.
func NewListCourierOrdersQuery(courierID kernel.UUID, status string, limit, skip int) (ListCourierOrdersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ListCourierOrdersQuery{}, err
	}

	var statusFilter *order.Status
	if status != "" {
		parsed, err := order.StatusFromString(status)
		if err != nil {
			return ListCourierOrdersQuery{}, err
		}
		statusFilter = &parsed
	}

	limit, skip, err := normalizePage(limit, skip)
	if err != nil {
		return ListCourierOrdersQuery{}, err
	}

	return ListCourierOrdersQuery{
		courierID: courierID,
		status:    statusFilter,
		limit:     limit,
		skip:      skip,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCourierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCourierOrdersQueryIsNotConstructed)
}

// CourierID returns the claimant whose orders are listed.
func (q ListCourierOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Status returns the optional status filter, nil when absent.
func (q ListCourierOrdersQuery) Status() *order.Status {
	return q.status
}

// Limit returns the page size.
func (q ListCourierOrdersQuery) Limit() int {
	return q.limit
}

// Skip returns the offset into the result set.
func (q ListCourierOrdersQuery) Skip() int {
	return q.skip
}
