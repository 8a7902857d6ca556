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
	// ErrOrderAlreadyClaimed is returned when the order left pending status
	// before this courier's claim landed, either because another courier won
	// the race or because the order was claimed earlier.
	ErrOrderAlreadyClaimed = errors.New("order is already claimed")

	// ErrCourierNotEligible is returned when an inactive or unavailable
	// courier tries to claim an order.
	ErrCourierNotEligible = errors.New("courier is not eligible to claim orders")
)

// ClaimOrderCommandHandler handles exclusive order claims.
//
// The claim is decided by a conditional write: the order row is updated only
// if it is still pending, so under concurrent claims exactly one courier
// wins and every loser gets ErrOrderAlreadyClaimed. The winner's courier
// counters and the owner's notification are part of the same transaction.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewClaimOrderCommandHandler creates a handler for order claims.
func NewClaimOrderCommandHandler(uowFactory UoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	claimedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if claimedOrder.Status() != order.Pending {
		return ErrOrderAlreadyClaimed
	}

	claimant, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !claimant.IsEligible() {
		return ErrCourierNotEligible
	}

	now := time.Now().UTC()
	courierInfo := order.NewContactInfo(claimant.Name(), claimant.Phone(), claimant.Email())
	if err = claimedOrder.Assign(claimant.ID(), courierInfo, now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, claimedOrder, order.Pending); err != nil {
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			return ErrOrderAlreadyClaimed
		}
		return err
	}

	if err = claimant.RecordAssignment(now); err != nil {
		return err
	}
	if err = uow.CourierRepository().Update(ctx, claimant); err != nil {
		return err
	}

	ownerID := claimedOrder.UserID()
	assignedNote := &ports.OutboxMessage{
		ID:            kernel.NewUUID(),
		Kind:          ports.OutboxKindDirect,
		RecipientID:   &ownerID,
		RecipientRole: notification.RoleUser,
		NotifType:     notification.TypeOrderAssigned,
		Title:         "Order Assigned",
		Body:          claimant.Name() + " is delivering your order",
		Payload: map[string]string{
			"order_id":     claimedOrder.ID().String(),
			"courier_name": claimant.Name(),
		},
		Status:    ports.OutboxStatusPending,
		CreatedAt: now,
	}
	if err = uow.OutboxRepository().Add(ctx, assignedNote); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
