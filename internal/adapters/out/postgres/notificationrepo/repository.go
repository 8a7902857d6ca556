package notificationrepo

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new notification record to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddBatch saves all given notification records in a single insert.
// An empty batch is a no-op, so an all-failed or empty fan-out never
// produces a degenerate INSERT.
func (r *GormNotificationRepository) AddBatch(ctx context.Context, aggregates []*notification.Notification) error {
	if len(aggregates) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if err := aggregate.Validate(); err != nil {
			return err
		}

		dto, err := fromDomain(aggregate)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// Update saves an existing notification record to the database.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a notification record by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// MarkAllRead marks every unread notification of the recipient as read and
// returns how many rows changed. Already-read notifications keep their
// original read_at.
func (r *GormNotificationRepository) MarkAllRead(
	ctx context.Context,
	recipientID kernel.UUID,
	role notification.Role,
	now time.Time,
) (int, error) {
	if err := recipientID.Validate(); err != nil {
		return 0, err
	}
	if err := role.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND recipient_role = ? AND read = false", recipientID.Bytes(), string(role)).
		Updates(map[string]any{
			"read":    true,
			"read_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}
