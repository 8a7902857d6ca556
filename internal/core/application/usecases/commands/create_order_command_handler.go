package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/core/domain/model/order"
	"broker/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Creates the order in pending status with a contact snapshot of its owner
// and enqueues a broadcast announcement for eligible couriers. The
// announcement goes through the outbox, so it is only dispatched if the
// order actually committed.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	owner, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		owner.ID(),
		cmd.Notes(),
		cmd.Address(),
		order.NewContactInfo(owner.Name(), owner.Phone(), owner.Email()),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	announcement := &ports.OutboxMessage{
		ID:            kernel.NewUUID(),
		Kind:          ports.OutboxKindBroadcast,
		RecipientRole: notification.RoleCourier,
		NotifType:     notification.TypeNewOrder,
		Title:         "New Order Available",
		Body:          "A new order is waiting to be claimed",
		Payload:       map[string]string{"order_id": newOrder.ID().String()},
		Status:        ports.OutboxStatusPending,
		CreatedAt:     now,
	}
	if err = uow.OutboxRepository().Add(ctx, announcement); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
