package queries

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery retrieves a recipient's notifications, newest
// first, optionally narrowed to unread ones.
type ListNotificationsQuery struct {
	recipientID   kernel.UUID
	recipientRole notification.Role
	unreadOnly    bool
	limit         int
	skip          int

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery creates a paginated query over one recipient's
// notifications.
func NewListNotificationsQuery(
	recipientID kernel.UUID,
	recipientRole notification.Role,
	unreadOnly bool,
	limit, skip int,
) (ListNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	if err := recipientRole.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}

	limit, skip, err := normalizePage(limit, skip)
	if err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		recipientID:   recipientID,
		recipientRole: recipientRole,
		unreadOnly:    unreadOnly,
		limit:         limit,
		skip:          skip,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// RecipientID returns the recipient whose notifications are listed.
func (q ListNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// RecipientRole returns the namespace the recipient identifier belongs to.
func (q ListNotificationsQuery) RecipientRole() notification.Role {
	return q.recipientRole
}

// UnreadOnly reports whether read notifications are filtered out.
func (q ListNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

// Limit returns the page size.
func (q ListNotificationsQuery) Limit() int {
	return q.limit
}

// Skip returns the offset into the result set.
func (q ListNotificationsQuery) Skip() int {
	return q.skip
}

// NotificationResponse is the read-side projection of one notification.
type NotificationResponse struct {
	ID        kernel.UUID
	Type      string
	Title     string
	Body      string
	Payload   map[string]string
	Read      bool
	CreatedAt time.Time
	ReadAt    *time.Time
}

// ListNotificationsResponse is one page of notifications together with the
// recipient's unread count across the whole mailbox.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse
	UnreadCount   int64
	Page          PageInfo
}
