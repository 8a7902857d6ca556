package ports

import (
	"context"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
)

// Outbox message kinds.
const (
	// OutboxKindDirect targets a single known recipient.
	OutboxKindDirect OutboxKind = "direct"
	// OutboxKindBroadcast fans out to all eligible couriers, resolved at
	// dispatch time rather than enqueue time.
	OutboxKindBroadcast OutboxKind = "broadcast"
)

// Outbox message statuses.
const (
	OutboxStatusPending OutboxStatus = "pending"
	// OutboxStatusInFlight marks a message a relay has claimed and is
	// currently dispatching. A claim left behind by a crashed relay expires
	// and the message becomes claimable again.
	OutboxStatusInFlight OutboxStatus = "in_flight"
	OutboxStatusSent     OutboxStatus = "sent"
	OutboxStatusFailed   OutboxStatus = "failed"
)

// OutboxKind tells the relay whether a message targets one recipient or all
// eligible couriers.
type OutboxKind string

// OutboxStatus is the relay-side delivery state of an outbox message.
type OutboxStatus string

// OutboxMessage is a pending notification dispatch recorded in the same
// transaction as the state change that caused it. The relay job picks
// pending messages up after commit, so a crash between commit and dispatch
// loses nothing and an aborted transaction sends nothing.
type OutboxMessage struct {
	ID            kernel.UUID
	Kind          OutboxKind
	RecipientID   *kernel.UUID
	RecipientRole notification.Role
	NotifType     notification.Type
	Title         string
	Body          string
	Payload       map[string]string
	Status        OutboxStatus
	Attempts      int
	CreatedAt     time.Time
	ClaimedAt     *time.Time
	SentAt        *time.Time
}

// OutboxRepository defines the persistence contract for the notification
// outbox.
type OutboxRepository interface {
	// Add enqueues a message within the ambient transaction.
	Add(ctx context.Context, message *OutboxMessage) error

	// GetPending retrieves up to limit dispatchable messages, oldest first.
	// This includes in-flight messages whose claim has expired.
	GetPending(ctx context.Context, limit int) ([]*OutboxMessage, error)

	// Claim atomically moves a message from pending to in-flight and
	// reports whether this caller won it. Exactly one of any number of
	// concurrent claimants gets true; the rest must skip the message.
	Claim(ctx context.Context, id kernel.UUID) (bool, error)

	// MarkSent transitions a message to sent and stamps the dispatch time.
	MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error

	// MarkFailed records a failed dispatch attempt. Below maxAttempts the
	// message returns to pending for a later tick; once attempts reach
	// maxAttempts it moves to failed and the relay stops retrying.
	MarkFailed(ctx context.Context, id kernel.UUID, maxAttempts int) error
}
