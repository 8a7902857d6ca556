package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"
	"broker/internal/pkg/guard"
)

var ErrListUserOrdersQueryIsNotConstructed = errors.New(
	"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
)

// ListUserOrdersQuery retrieves the orders a user has placed, newest first,
// optionally narrowed to a single status.
type ListUserOrdersQuery struct {
	userID kernel.UUID
	status *order.Status
	limit  int
	skip   int

	guard guard.ConstructorGuard
}

// NewListUserOrdersQuery creates a paginated query over one user's orders.
// An empty status string means no status filter.
func NewListUserOrdersQuery(userID kernel.UUID, status string, limit, skip int) (ListUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListUserOrdersQuery{}, err
	}

	var statusFilter *order.Status
	if status != "" {
		parsed, err := order.StatusFromString(status)
		if err != nil {
			return ListUserOrdersQuery{}, err
		}
		statusFilter = &parsed
	}

	limit, skip, err := normalizePage(limit, skip)
	if err != nil {
		return ListUserOrdersQuery{}, err
	}

	return ListUserOrdersQuery{
		userID: userID,
		status: statusFilter,
		limit:  limit,
		skip:   skip,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

// UserID returns the owner whose orders are listed.
func (q ListUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Status returns the optional status filter, nil when absent.
func (q ListUserOrdersQuery) Status() *order.Status {
	return q.status
}

// Limit returns the page size.
func (q ListUserOrdersQuery) Limit() int {
	return q.limit
}

// Skip returns the offset into the result set.
func (q ListUserOrdersQuery) Skip() int {
	return q.skip
}
