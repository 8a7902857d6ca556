package queries

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrCourierHistoryQueryIsNotConstructed = errors.New(
	"CourierHistoryQuery must be created via NewCourierHistoryQuery constructor",
)

// CourierHistoryQuery retrieves a courier's completed deliveries within an
// optional date range, together with delivery latency aggregates.
type CourierHistoryQuery struct {
	courierID kernel.UUID
	from      *time.Time
	to        *time.Time
	limit     int
	skip      int

	guard guard.ConstructorGuard
}

// NewCourierHistoryQuery creates a history query for one courier. The range
// is inclusive on both ends, with the end date covering its whole day.
func NewCourierHistoryQuery(courierID kernel.UUID, from, to *time.Time, limit, skip int) (CourierHistoryQuery, error) {
	if err := courierID.Validate(); err != nil {
		return CourierHistoryQuery{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return CourierHistoryQuery{}, errs.NewValueIsInvalidError("dateRange")
	}

	limit, skip, err := normalizePage(limit, skip)
	if err != nil {
		return CourierHistoryQuery{}, err
	}

	return CourierHistoryQuery{
		courierID: courierID,
		from:      from,
		to:        to,
		limit:     limit,
		skip:      skip,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CourierHistoryQuery) Validate() error {
	return q.guard.Validate(ErrCourierHistoryQueryIsNotConstructed)
}

// CourierID returns the courier whose history is requested.
func (q CourierHistoryQuery) CourierID() kernel.UUID {
	return q.courierID
}

// From returns the inclusive range start, nil when unbounded.
func (q CourierHistoryQuery) From() *time.Time {
	return q.from
}

// To returns the inclusive range end, nil when unbounded.
func (q CourierHistoryQuery) To() *time.Time {
	return q.to
}

// Limit returns the page size.
func (q CourierHistoryQuery) Limit() int {
	return q.limit
}

// Skip returns the offset into the result set.
func (q CourierHistoryQuery) Skip() int {
	return q.skip
}
