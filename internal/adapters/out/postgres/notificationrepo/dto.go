// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence. The payload map is stored as
// jsonb so it stays queryable without a schema change per notification type.
package notificationrepo

import (
	"encoding/json"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification records. The (recipient_id, recipient_role) pair is indexed
// for mailbox queries: a recipient id alone is not unique across roles.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID   uuid.UUID `gorm:"type:uuid;index:idx_notifications_recipient"`
	RecipientRole string    `gorm:"size:20;index:idx_notifications_recipient"`
	Type          string    `gorm:"size:50"`
	Title         string    `gorm:"size:255"`
	Body          string
	Payload       []byte `gorm:"type:jsonb"`
	Read          bool
	CreatedAt     time.Time
	ReadAt        *time.Time
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification domain aggregate to its database
// representation.
func fromDomain(aggregate *notification.Notification) (NotificationDTO, error) {
	var payload []byte
	if len(aggregate.Payload()) > 0 {
		raw, err := json.Marshal(aggregate.Payload())
		if err != nil {
			return NotificationDTO{}, err
		}
		payload = raw
	}

	return NotificationDTO{
		ID:            aggregate.ID().Bytes(),
		RecipientID:   aggregate.RecipientID().Bytes(),
		RecipientRole: string(aggregate.RecipientRole()),
		Type:          string(aggregate.Type()),
		Title:         aggregate.Title(),
		Body:          aggregate.Body(),
		Payload:       payload,
		Read:          aggregate.Read(),
		CreatedAt:     aggregate.CreatedAt(),
		ReadAt:        aggregate.ReadAt(),
	}, nil
}

// toDomain converts a database DTO back to a notification domain aggregate.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var payload map[string]string
	if len(dto.Payload) > 0 {
		if err = json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(
		id,
		recipientID,
		notification.Role(dto.RecipientRole),
		notification.Type(dto.Type),
		dto.Title,
		dto.Body,
		payload,
		dto.Read,
		dto.CreatedAt,
		dto.ReadAt,
	)
}
