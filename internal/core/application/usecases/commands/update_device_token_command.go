package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/auth"
	"broker/internal/pkg/guard"
)

var (
	ErrUpdateDeviceTokenCommandIsNotConstructed = errors.New(
		"UpdateDeviceTokenCommand must be created via NewUpdateDeviceTokenCommand constructor",
	)
	ErrUnknownRole = errors.New("unknown account role")
)

// UpdateDeviceTokenCommand represents a request to register or replace the
// push device token of the calling account. An empty token unregisters the
// device.
type UpdateDeviceTokenCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	role    string
	token   string

	guard guard.ConstructorGuard
}

// NewUpdateDeviceTokenCommand creates a device token update command.
func NewUpdateDeviceTokenCommand(actorID kernel.UUID, role, token string) (UpdateDeviceTokenCommand, error) {
	tokenCommand := UpdateDeviceTokenCommand{
		token: token,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tokenCommand.setActorID(actorID),
		tokenCommand.setRole(role),
	); err != nil {
		return UpdateDeviceTokenCommand{}, err
	}

	return tokenCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeviceTokenCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeviceTokenCommandIsNotConstructed)
}

// ActorID returns the identifier of the calling account.
func (c UpdateDeviceTokenCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns whether the caller is a user or a courier.
func (c UpdateDeviceTokenCommand) Role() string {
	return c.role
}

// Token returns the new device token, possibly empty.
func (c UpdateDeviceTokenCommand) Token() string {
	return c.token
}

func (c *UpdateDeviceTokenCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateDeviceTokenCommand) setRole(role string) error {
	if role != auth.RoleUser && role != auth.RoleCourier {
		return ErrUnknownRole
	}

	c.role = role
	return nil
}
