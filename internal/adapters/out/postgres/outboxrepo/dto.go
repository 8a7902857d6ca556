// Package outboxrepo persists the notification outbox. Messages are written
// in the same transaction as the state change that caused them; the relay
// job reads pending rows back after commit.
package outboxrepo

import (
	"encoding/json"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO represents the database structure for outbox messages.
// Status is indexed because the relay polls for pending rows.
type OutboxMessageDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind          string     `gorm:"size:20"`
	RecipientID   *uuid.UUID `gorm:"type:uuid"`
	RecipientRole string     `gorm:"size:20"`
	Type          string     `gorm:"size:50"`
	Title         string     `gorm:"size:255"`
	Body          string
	Payload       []byte `gorm:"type:jsonb"`
	Status        string `gorm:"size:20;index"`
	Attempts      int
	CreatedAt     time.Time
	ClaimedAt     *time.Time
	SentAt        *time.Time
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// fromMessage converts an outbox message to its database representation.
func fromMessage(message *ports.OutboxMessage) (OutboxMessageDTO, error) {
	var payload []byte
	if len(message.Payload) > 0 {
		raw, err := json.Marshal(message.Payload)
		if err != nil {
			return OutboxMessageDTO{}, err
		}
		payload = raw
	}

	var recipientID *uuid.UUID
	if message.RecipientID != nil {
		raw := message.RecipientID.Bytes()
		recipientID = &raw
	}

	return OutboxMessageDTO{
		ID:            message.ID.Bytes(),
		Kind:          string(message.Kind),
		RecipientID:   recipientID,
		RecipientRole: string(message.RecipientRole),
		Type:          string(message.NotifType),
		Title:         message.Title,
		Body:          message.Body,
		Payload:       payload,
		Status:        string(message.Status),
		Attempts:      message.Attempts,
		CreatedAt:     message.CreatedAt,
		ClaimedAt:     message.ClaimedAt,
		SentAt:        message.SentAt,
	}, nil
}

// toMessage converts a database DTO back to an outbox message.
func toMessage(dto OutboxMessageDTO) (*ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var recipientID *kernel.UUID
	if dto.RecipientID != nil {
		rID, idErr := kernel.UUIDFromBytes((*dto.RecipientID)[:])
		if idErr != nil {
			return nil, idErr
		}
		recipientID = &rID
	}

	var payload map[string]string
	if len(dto.Payload) > 0 {
		if err = json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return &ports.OutboxMessage{
		ID:            id,
		Kind:          ports.OutboxKind(dto.Kind),
		RecipientID:   recipientID,
		RecipientRole: notification.Role(dto.RecipientRole),
		NotifType:     notification.Type(dto.Type),
		Title:         dto.Title,
		Body:          dto.Body,
		Payload:       payload,
		Status:        ports.OutboxStatus(dto.Status),
		Attempts:      dto.Attempts,
		CreatedAt:     dto.CreatedAt,
		ClaimedAt:     dto.ClaimedAt,
		SentAt:        dto.SentAt,
	}, nil
}
