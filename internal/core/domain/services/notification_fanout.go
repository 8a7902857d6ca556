package services

import (
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
)

// Recipient is a resolved fan-out target: an account that should receive a
// durable notification record, plus the device token to push to (empty when
// the account has no registered device).
type Recipient struct {
	ID          kernel.UUID
	Role        notification.Role
	DeviceToken string
}

// NotificationFanout is a domain service that turns a message template and a
// recipient set into notification records.
//
// Business rules:
//   - Exactly one record per distinct recipient; duplicate IDs in the input
//     collapse to a single record
//   - Every recipient gets a record whether or not they have a device token
//   - An empty recipient set produces an empty plan
type NotificationFanout struct{}

// NewNotificationFanout creates a new NotificationFanout instance.
func NewNotificationFanout() NotificationFanout {
	return NotificationFanout{}
}

// Plan builds one unread notification record per distinct recipient.
// Record order follows the first appearance of each recipient in the input.
func (f NotificationFanout) Plan(
	recipients []Recipient,
	notifType notification.Type,
	title string,
	body string,
	payload map[string]string,
	now time.Time,
) ([]*notification.Notification, error) {
	records := make([]*notification.Notification, 0, len(recipients))
	seen := make(map[kernel.UUID]struct{}, len(recipients))

	for _, recipient := range recipients {
		if _, ok := seen[recipient.ID]; ok {
			continue
		}
		seen[recipient.ID] = struct{}{}

		record, err := notification.NewNotification(
			kernel.NewUUID(),
			recipient.ID,
			recipient.Role,
			notifType,
			title,
			body,
			payload,
			now,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
