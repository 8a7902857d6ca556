package commands

import (
	"context"
	"errors"
	"time"
)

// ErrNotRecipient is returned when an account tries to mark a notification
// that belongs to someone else.
var ErrNotRecipient = errors.New("notification belongs to a different recipient")

// MarkNotificationReadCommandHandler marks a single notification as read.
// The read flag is monotonic: marking an already-read notification succeeds
// without moving its read timestamp.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for mark-read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-read command.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	record, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !record.RecipientID().IsEqual(cmd.ActorID()) || record.RecipientRole() != cmd.ActorRole() {
		return ErrNotRecipient
	}

	record.MarkRead(time.Now().UTC())
	if err = notificationRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
