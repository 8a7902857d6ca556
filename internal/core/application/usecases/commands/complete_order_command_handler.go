package commands

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/core/domain/model/order"
	"broker/internal/core/ports"
)

var (
	// ErrOrderAlreadyCompleted is returned when completing an order that has
	// already been delivered. The original completion timestamp is preserved.
	ErrOrderAlreadyCompleted = errors.New("order is already completed")

	// ErrOrderNotClaimed is returned when completing an order nobody has
	// claimed yet.
	ErrOrderNotClaimed = errors.New("order has not been claimed")
)

// CompleteOrderCommandHandler handles order completion.
//
// Completion is idempotence-guarded twice: the handler rejects orders that
// already left processing status, and the conditional write refuses to land
// on a row that changed underneath. A replayed completion therefore never
// rewrites completed_at or double-counts the courier's totals.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command. Only the assigned courier may
// complete the order; anyone else gets order.ErrNotAssignedCourier.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	completedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	switch completedOrder.Status() {
	case order.Completed:
		return ErrOrderAlreadyCompleted
	case order.Pending:
		return ErrOrderNotClaimed
	}

	now := time.Now().UTC()
	if err = completedOrder.Complete(cmd.CourierID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, completedOrder, order.Processing); err != nil {
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			return ErrOrderAlreadyCompleted
		}
		return err
	}

	deliverer, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	deliverer.RecordCompletion(now)
	if err = uow.CourierRepository().Update(ctx, deliverer); err != nil {
		return err
	}

	ownerID := completedOrder.UserID()
	deliveredNote := &ports.OutboxMessage{
		ID:            kernel.NewUUID(),
		Kind:          ports.OutboxKindDirect,
		RecipientID:   &ownerID,
		RecipientRole: notification.RoleUser,
		NotifType:     notification.TypeOrderCompleted,
		Title:         "Order Delivered",
		Body:          "Your order has been delivered",
		Payload:       map[string]string{"order_id": completedOrder.ID().String()},
		Status:        ports.OutboxStatusPending,
		CreatedAt:     now,
	}
	if err = uow.OutboxRepository().Add(ctx, deliveredNote); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
