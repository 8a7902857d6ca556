package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/pkg/guard"
)

var ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
)

// MarkAllNotificationsReadCommand represents a recipient's request to mark
// every unread notification of theirs as read.
type MarkAllNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole notification.Role

	guard guard.ConstructorGuard
}

// NewMarkAllNotificationsReadCommand creates a mark-all-read command.
func NewMarkAllNotificationsReadCommand(
	actorID kernel.UUID,
	actorRole notification.Role,
) (MarkAllNotificationsReadCommand, error) {
	readCommand := MarkAllNotificationsReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		readCommand.setActorID(actorID),
		readCommand.setActorRole(actorRole),
	); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}

	return readCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

// ActorID returns the identifier of the calling account.
func (c MarkAllNotificationsReadCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the calling account.
func (c MarkAllNotificationsReadCommand) ActorRole() notification.Role {
	return c.actorRole
}

func (c *MarkAllNotificationsReadCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *MarkAllNotificationsReadCommand) setActorRole(actorRole notification.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
