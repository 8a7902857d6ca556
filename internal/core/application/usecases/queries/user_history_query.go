package queries

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrUserHistoryQueryIsNotConstructed = errors.New(
	"UserHistoryQuery must be created via NewUserHistoryQuery constructor",
)

// UserHistoryQuery retrieves a user's completed orders within an optional
// date range, together with delivery latency aggregates.
type UserHistoryQuery struct {
	userID kernel.UUID
	from   *time.Time
	to     *time.Time
	limit  int
	skip   int

	guard guard.ConstructorGuard
}

// NewUserHistoryQuery creates a history query for one user. The range is
// inclusive on both ends, with the end date covering its whole day.
func NewUserHistoryQuery(userID kernel.UUID, from, to *time.Time, limit, skip int) (UserHistoryQuery, error) {
	if err := userID.Validate(); err != nil {
		return UserHistoryQuery{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return UserHistoryQuery{}, errs.NewValueIsInvalidError("dateRange")
	}

	limit, skip, err := normalizePage(limit, skip)
	if err != nil {
		return UserHistoryQuery{}, err
	}

	return UserHistoryQuery{
		userID: userID,
		from:   from,
		to:     to,
		limit:  limit,
		skip:   skip,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q UserHistoryQuery) Validate() error {
	return q.guard.Validate(ErrUserHistoryQueryIsNotConstructed)
}

// UserID returns the user whose history is requested.
func (q UserHistoryQuery) UserID() kernel.UUID {
	return q.userID
}

// From returns the inclusive range start, nil when unbounded.
func (q UserHistoryQuery) From() *time.Time {
	return q.from
}

// To returns the inclusive range end, nil when unbounded.
func (q UserHistoryQuery) To() *time.Time {
	return q.to
}

// Limit returns the page size.
func (q UserHistoryQuery) Limit() int {
	return q.limit
}

// Skip returns the offset into the result set.
func (q UserHistoryQuery) Skip() int {
	return q.skip
}
