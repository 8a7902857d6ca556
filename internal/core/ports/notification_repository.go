package ports

import (
	"context"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records. Fan-out writes go through AddBatch so a broadcast lands as a
// single bulk insert.
type NotificationRepository interface {
	// Add persists a single notification record.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// AddBatch persists all given notification records in one write.
	// An empty batch is a no-op.
	AddBatch(ctx context.Context, aggregates []*notification.Notification) error

	// Update persists changes to an existing notification record.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// MarkAllRead marks every unread notification of the recipient as read
	// at the given time and returns how many rows changed.
	MarkAllRead(ctx context.Context, recipientID kernel.UUID, role notification.Role, now time.Time) (int, error)
}
