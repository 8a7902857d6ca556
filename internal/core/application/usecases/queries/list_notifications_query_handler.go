package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"broker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler serves a recipient's notification mailbox.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewListNotificationsQueryHandler creates a handler for mailbox listings.
func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle executes the query. Notifications are returned newest first; the
// unread count always covers the whole mailbox regardless of paging and the
// unread filter.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (ListNotificationsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListNotificationsResponse{}, err
	}

	where := "recipient_id = ? AND recipient_role = ?"
	args := []any{query.RecipientID().Bytes(), query.RecipientRole()}
	if query.UnreadOnly() {
		where += " AND read = false"
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(
		"SELECT count(*) FROM notifications WHERE "+where, args...,
	).Scan(&total).Error
	if err != nil {
		return ListNotificationsResponse{}, err
	}

	var unread int64
	err = h.db.WithContext(ctx).Raw(`
		SELECT count(*) FROM notifications
		WHERE recipient_id = ? AND recipient_role = ? AND read = false
	`, query.RecipientID().Bytes(), query.RecipientRole()).Scan(&unread).Error
	if err != nil {
		return ListNotificationsResponse{}, err
	}

	args = append(args, query.Limit(), query.Skip())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, type, title, body, payload, read, created_at, read_at
		FROM notifications
		WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return ListNotificationsResponse{}, err
	}
	defer rows.Close()

	notifications := make([]NotificationResponse, 0)
	for rows.Next() {
		var resp NotificationResponse
		var id uuid.UUID
		var payload []byte
		var readAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.Type,
			&resp.Title,
			&resp.Body,
			&payload,
			&resp.Read,
			&resp.CreatedAt,
			&readAt,
		)
		if err != nil {
			return ListNotificationsResponse{}, err
		}

		notifID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListNotificationsResponse{}, idErr
		}
		resp.ID = notifID

		if len(payload) > 0 {
			if err = json.Unmarshal(payload, &resp.Payload); err != nil {
				return ListNotificationsResponse{}, err
			}
		}
		if readAt.Valid {
			at := readAt.Time
			resp.ReadAt = &at
		}

		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return ListNotificationsResponse{}, err
	}

	return ListNotificationsResponse{
		Notifications: notifications,
		UnreadCount:   unread,
		Page:          NewPageInfo(total, query.Limit(), query.Skip()),
	}, nil
}
