package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a recipient's request to mark one
// of their notifications as read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	actorID        kernel.UUID
	actorRole      notification.Role

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a mark-read command.
func NewMarkNotificationReadCommand(
	notificationID, actorID kernel.UUID,
	actorRole notification.Role,
) (MarkNotificationReadCommand, error) {
	readCommand := MarkNotificationReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		readCommand.setNotificationID(notificationID),
		readCommand.setActorID(actorID),
		readCommand.setActorRole(actorRole),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return readCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationID returns the identifier of the notification to mark.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// ActorID returns the identifier of the calling account.
func (c MarkNotificationReadCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the calling account.
func (c MarkNotificationReadCommand) ActorRole() notification.Role {
	return c.actorRole
}

func (c *MarkNotificationReadCommand) setNotificationID(notificationID kernel.UUID) error {
	if err := notificationID.Validate(); err != nil {
		return err
	}

	c.notificationID = notificationID
	return nil
}

func (c *MarkNotificationReadCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *MarkNotificationReadCommand) setActorRole(actorRole notification.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
