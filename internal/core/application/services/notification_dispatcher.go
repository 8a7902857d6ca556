package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"broker/internal/core/domain/model/courier"
	"broker/internal/core/domain/model/notification"
	domainservices "broker/internal/core/domain/services"
	"broker/internal/core/ports"
)

// ErrUnknownOutboxKind is returned when an outbox message carries a kind the
// dispatcher does not understand.
var ErrUnknownOutboxKind = errors.New("unknown outbox message kind")

// ErrRecipientIsRequired is returned when a direct message has no recipient.
var ErrRecipientIsRequired = errors.New("direct message requires a recipient")

// RetryPolicy bounds how hard the dispatcher pushes a single device token.
// MaxAttempts counts the initial send, so {MaxAttempts: 2, Delay: time.Second}
// means one retry a second after the first failure.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy retries each failed token once after a second.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 2, Delay: time.Second}

// DispatchResult summarizes one fan-out: how many durable records were
// written and how the push transport fared. Recipients without a device
// token count as transport failures; their records exist regardless.
type DispatchResult struct {
	Recipients int
	Delivered  int
	Failed     int
}

// NotificationDispatcher executes outbox messages: it resolves recipients,
// writes one durable notification record per recipient inside a transaction,
// and only then attempts push delivery. Push failures never fail the
// dispatch; the record is the contract, the push is best effort.
//
// Broadcast recipients are resolved at dispatch time through the
// availability registry, so couriers who became eligible after the
// triggering event still receive the message and couriers who went offline
// do not.
type NotificationDispatcher struct {
	uowFactory ports.UnitOfWorkFactory
	registry   *AvailabilityRegistry
	sender     ports.PushSender
	fanout     domainservices.NotificationFanout
	retry      RetryPolicy
	logger     *slog.Logger
}

// NewNotificationDispatcher creates a dispatcher. A nil logger falls back to
// slog.Default.
func NewNotificationDispatcher(
	uowFactory ports.UnitOfWorkFactory,
	registry *AvailabilityRegistry,
	sender ports.PushSender,
	retry RetryPolicy,
	logger *slog.Logger,
) *NotificationDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationDispatcher{
		uowFactory: uowFactory,
		registry:   registry,
		sender:     sender,
		fanout:     domainservices.NewNotificationFanout(),
		retry:      retry,
		logger:     logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch executes one outbox message end to end. An empty recipient set
// (a broadcast with no eligible couriers) is a successful zero-count no-op.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, msg *ports.OutboxMessage) (DispatchResult, error) {
	recipients, err := d.storeRecords(ctx, msg)
	if err != nil {
		return DispatchResult{}, err
	}

	result := DispatchResult{Recipients: len(recipients)}
	if len(recipients) == 0 {
		return result, nil
	}

	tokens := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		if recipient.DeviceToken != "" {
			tokens = append(tokens, recipient.DeviceToken)
		}
	}

	result.Delivered = d.push(ctx, tokens, msg.Title, msg.Body, msg.Payload)
	result.Failed = result.Recipients - result.Delivered
	return result, nil
}

// storeRecords resolves the recipient set and persists their notification
// records in a single transaction.
func (d *NotificationDispatcher) storeRecords(ctx context.Context, msg *ports.OutboxMessage) ([]domainservices.Recipient, error) {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	recipients, err := d.resolveRecipients(ctx, uow, msg)
	if err != nil {
		return nil, err
	}

	records, err := d.fanout.Plan(recipients, msg.NotifType, msg.Title, msg.Body, msg.Payload, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uow.NotificationRepository().AddBatch(ctx, records); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return recipients, nil
}

func (d *NotificationDispatcher) resolveRecipients(
	ctx context.Context,
	uow ports.UnitOfWork,
	msg *ports.OutboxMessage,
) ([]domainservices.Recipient, error) {
	switch msg.Kind {
	case ports.OutboxKindDirect:
		if msg.RecipientID == nil {
			return nil, ErrRecipientIsRequired
		}
		return d.resolveDirect(ctx, uow, msg)
	case ports.OutboxKindBroadcast:
		eligible, err := d.registry.ListEligible(ctx)
		if err != nil {
			return nil, err
		}
		return courierRecipients(eligible), nil
	default:
		return nil, ErrUnknownOutboxKind
	}
}

func (d *NotificationDispatcher) resolveDirect(
	ctx context.Context,
	uow ports.UnitOfWork,
	msg *ports.OutboxMessage,
) ([]domainservices.Recipient, error) {
	recipient := domainservices.Recipient{ID: *msg.RecipientID, Role: msg.RecipientRole}

	switch msg.RecipientRole {
	case notification.RoleUser:
		target, err := uow.UserRepository().Get(ctx, *msg.RecipientID)
		if err != nil {
			return nil, err
		}
		recipient.DeviceToken = target.DeviceToken()
	case notification.RoleCourier:
		target, err := uow.CourierRepository().Get(ctx, *msg.RecipientID)
		if err != nil {
			return nil, err
		}
		recipient.DeviceToken = target.DeviceToken()
	default:
		return nil, msg.RecipientRole.Validate()
	}

	return []domainservices.Recipient{recipient}, nil
}

// push attempts transport delivery and returns how many tokens succeeded.
// Multi-token sends go through the provider's multicast call first; tokens
// the batch could not reach are retried individually under the retry policy.
func (d *NotificationDispatcher) push(ctx context.Context, tokens []string, title, body string, payload map[string]string) int {
	if len(tokens) == 0 {
		return 0
	}

	if len(tokens) == 1 {
		if d.sendWithRetry(ctx, tokens[0], title, body, payload) {
			return 1
		}
		return 0
	}

	failed, err := d.sender.SendMulticast(ctx, tokens, title, body, payload)
	if err != nil {
		// Batch call itself failed, fall back to individual sends.
		d.logger.Warn("multicast send failed, falling back to individual sends", "error", err)
		failed = tokens
	}

	delivered := len(tokens) - len(failed)
	for _, token := range failed {
		if d.sendWithRetry(ctx, token, title, body, payload) {
			delivered++
		}
	}
	return delivered
}

func (d *NotificationDispatcher) sendWithRetry(ctx context.Context, token, title, body string, payload map[string]string) bool {
	for attempt := 1; ; attempt++ {
		err := d.sender.Send(ctx, token, title, body, payload)
		if err == nil {
			return true
		}

		if attempt >= d.retry.MaxAttempts {
			d.logger.Warn("push send failed", "attempts", attempt, "error", err)
			return false
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(d.retry.Delay):
		}
	}
}

func courierRecipients(couriers []*courier.Courier) []domainservices.Recipient {
	recipients := make([]domainservices.Recipient, 0, len(couriers))
	for _, c := range couriers {
		recipients = append(recipients, domainservices.Recipient{
			ID:          c.ID(),
			Role:        notification.RoleCourier,
			DeviceToken: c.DeviceToken(),
		})
	}
	return recipients
}
