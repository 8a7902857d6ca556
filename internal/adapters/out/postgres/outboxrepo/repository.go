package outboxrepo

import (
	"context"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"gorm.io/gorm"
)

// staleClaimAge is how long an in-flight claim is trusted. A relay that
// crashed mid-dispatch leaves its claim behind; after this long the message
// becomes claimable again.
const staleClaimAge = 10 * time.Minute

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add enqueues a message within the ambient transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, message *ports.OutboxMessage) error {
	dto, err := fromMessage(message)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending retrieves up to limit dispatchable messages, oldest first, so a
// backlog drains in enqueue order. In-flight messages whose claim went stale
// are included.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND claimed_at < ?)",
			string(ports.OutboxStatusPending),
			string(ports.OutboxStatusInFlight),
			time.Now().UTC().Add(-staleClaimAge)).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// Claim moves a message from pending to in-flight with a single
// compare-and-set UPDATE. The row count tells concurrent relays apart:
// exactly one sees an affected row and may dispatch, the rest get false.
// A stale in-flight claim can be taken over.
func (r *GormOutboxRepository) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ? AND (status = ? OR (status = ? AND claimed_at < ?))",
			id.Bytes(),
			string(ports.OutboxStatusPending),
			string(ports.OutboxStatusInFlight),
			now.Add(-staleClaimAge)).
		Updates(map[string]any{
			"status":     string(ports.OutboxStatusInFlight),
			"claimed_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkSent transitions a message to sent and stamps the dispatch time.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"status":  string(ports.OutboxStatusSent),
			"sent_at": sentAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}

	return nil
}

// MarkFailed records a failed dispatch attempt. The attempt counter is
// bumped in SQL so concurrent relays do not lose increments. Below
// maxAttempts the message goes back to pending and a later tick retries it;
// once attempts reach maxAttempts it flips to failed and stops being polled.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, maxAttempts int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE outbox_messages
		SET attempts = attempts + 1,
		    status = CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END,
		    claimed_at = NULL
		WHERE id = ?
	`, maxAttempts, string(ports.OutboxStatusFailed), string(ports.OutboxStatusPending), id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}

	return nil
}
