package commands

import (
	"context"
	"time"

	"broker/internal/pkg/auth"
)

// DeviceTokenUoW spans the two account aggregates a device token can belong to.
type DeviceTokenUoW interface {
	TxManager
	UserRepoFactory
	CourierRepoFactory
}

// DeviceTokenUoWFactory creates unit of work instances for token updates.
type DeviceTokenUoWFactory interface {
	Create() DeviceTokenUoW
}

// UpdateDeviceTokenCommandHandler stores push device tokens on the calling
// account, user or courier alike.
type UpdateDeviceTokenCommandHandler struct {
	uowFactory DeviceTokenUoWFactory
}

// NewUpdateDeviceTokenCommandHandler creates a handler for token updates.
func NewUpdateDeviceTokenCommandHandler(uowFactory DeviceTokenUoWFactory) UpdateDeviceTokenCommandHandler {
	return UpdateDeviceTokenCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the token update command.
func (h *UpdateDeviceTokenCommandHandler) Handle(ctx context.Context, cmd UpdateDeviceTokenCommand) error {
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

	now := time.Now().UTC()
	if cmd.Role() == auth.RoleCourier {
		account, err := uow.CourierRepository().Get(ctx, cmd.ActorID())
		if err != nil {
			return err
		}
		account.UpdateDeviceToken(cmd.Token(), now)
		if err = uow.CourierRepository().Update(ctx, account); err != nil {
			return err
		}
	} else {
		account, err := uow.UserRepository().Get(ctx, cmd.ActorID())
		if err != nil {
			return err
		}
		account.UpdateDeviceToken(cmd.Token(), now)
		if err = uow.UserRepository().Update(ctx, account); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
