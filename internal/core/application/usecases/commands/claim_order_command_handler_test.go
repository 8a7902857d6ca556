package commands_test

import (
	"testing"
	"time"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/core/domain/model/order"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	claimant := mustNewCourier("Bob", "bob@example.com")
	pendingOrder := mustNewPendingOrder(kernel.NewUUID())
	cmd, err := commands.NewClaimOrderCommand(pendingOrder.ID(), claimant.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	var assignedNote *ports.OutboxMessage

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, claimant.ID()).Return(claimant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.Pending).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*ports.OutboxMessage")).
			Run(func(args mock.Arguments) { assignedNote = args.Get(1).(*ports.OutboxMessage) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Processing, pendingOrder.Status())
	require.NotNil(t, pendingOrder.Courier())
	assert.True(t, pendingOrder.Courier().IsEqual(claimant.ID()))
	assert.NotNil(t, pendingOrder.AssignedAt())

	assert.Equal(t, 1, claimant.CurrentOrdersCount())
	assert.False(t, claimant.Available())

	require.NotNil(t, assignedNote)
	assert.Equal(t, ports.OutboxKindDirect, assignedNote.Kind)
	assert.Equal(t, notification.TypeOrderAssigned, assignedNote.NotifType)
	require.NotNil(t, assignedNote.RecipientID)
	assert.True(t, assignedNote.RecipientID.IsEqual(pendingOrder.UserID()))

	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_AlreadyClaimedAtRead(t *testing.T) {
	ctx := t.Context()

	claimant := mustNewCourier("Bob", "bob@example.com")
	claimedOrder := mustNewPendingOrder(kernel.NewUUID())
	otherCourier := mustNewCourier("Dave", "dave@example.com")
	require.NoError(t, claimedOrder.Assign(otherCourier.ID(), order.ContactInfo{}, time.Now().UTC()))

	cmd, err := commands.NewClaimOrderCommand(claimedOrder.ID(), claimant.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, claimedOrder.ID()).Return(claimedOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyClaimed)
	orderRepo.AssertNotCalled(t, "UpdateInStatus")
}

func TestClaimOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	claimant := mustNewCourier("Bob", "bob@example.com")
	pendingOrder := mustNewPendingOrder(kernel.NewUUID())
	cmd, err := commands.NewClaimOrderCommand(pendingOrder.ID(), claimant.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, claimant.ID()).Return(claimant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.Pending).
			Return(ports.ErrConcurrentUpdate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyClaimed)
	courierRepo.AssertNotCalled(t, "Update")
}

func TestClaimOrderCommandHandler_Handle_IneligibleCourier(t *testing.T) {
	ctx := t.Context()

	claimant := mustNewCourier("Bob", "bob@example.com")
	require.NoError(t, claimant.SetAvailability(false, time.Now().UTC()))
	pendingOrder := mustNewPendingOrder(kernel.NewUUID())
	cmd, err := commands.NewClaimOrderCommand(pendingOrder.ID(), claimant.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, claimant.ID()).Return(claimant, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCourierNotEligible)
	assert.Equal(t, order.Pending, pendingOrder.Status())
}

func TestClaimOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	missingID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(missingID, kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, missingID).Return(nil, errs.NewObjectNotFoundError("id", missingID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClaimOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ClaimOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewClaimOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrClaimOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
