package commands_test

import (
	"testing"
	"time"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/core/domain/model/order"
	"broker/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func claimedOrderFixture(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := mustNewPendingOrder(kernel.NewUUID())
	require.NoError(t, o.Assign(courierID, order.NewContactInfo("Bob", "5550002", "bob@example.com"), time.Now().UTC()))
	return o
}

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	deliverer := mustNewCourier("Bob", "bob@example.com")
	require.NoError(t, deliverer.RecordAssignment(time.Now().UTC()))
	processingOrder := claimedOrderFixture(t, deliverer.ID())

	cmd, err := commands.NewCompleteOrderCommand(processingOrder.ID(), deliverer.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	var deliveredNote *ports.OutboxMessage

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, processingOrder.ID()).Return(processingOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.Processing).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, deliverer.ID()).Return(deliverer, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*ports.OutboxMessage")).
			Run(func(args mock.Arguments) { deliveredNote = args.Get(1).(*ports.OutboxMessage) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, processingOrder.Status())
	assert.NotNil(t, processingOrder.CompletedAt())

	assert.Zero(t, deliverer.CurrentOrdersCount())
	assert.Equal(t, 1, deliverer.TotalOrdersCompleted())
	assert.True(t, deliverer.Available())

	require.NotNil(t, deliveredNote)
	assert.Equal(t, notification.TypeOrderCompleted, deliveredNote.NotifType)
	require.NotNil(t, deliveredNote.RecipientID)
	assert.True(t, deliveredNote.RecipientID.IsEqual(processingOrder.UserID()))

	uow.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()

	deliverer := mustNewCourier("Bob", "bob@example.com")
	completedOrder := claimedOrderFixture(t, deliverer.ID())
	firstCompletion := time.Now().UTC()
	require.NoError(t, completedOrder.Complete(deliverer.ID(), firstCompletion))

	cmd, err := commands.NewCompleteOrderCommand(completedOrder.ID(), deliverer.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, completedOrder.ID()).Return(completedOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyCompleted)
	assert.Equal(t, firstCompletion, *completedOrder.CompletedAt())
	orderRepo.AssertNotCalled(t, "UpdateInStatus")
}

func TestCompleteOrderCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()

	assignedCourier := mustNewCourier("Bob", "bob@example.com")
	impostor := mustNewCourier("Mallory", "mallory@example.com")
	processingOrder := claimedOrderFixture(t, assignedCourier.ID())

	cmd, err := commands.NewCompleteOrderCommand(processingOrder.ID(), impostor.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, processingOrder.ID()).Return(processingOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotAssignedCourier)
	assert.Equal(t, order.Processing, processingOrder.Status())
	assert.Nil(t, processingOrder.CompletedAt())
}

func TestCompleteOrderCommandHandler_Handle_UnclaimedOrder(t *testing.T) {
	ctx := t.Context()

	pendingOrder := mustNewPendingOrder(kernel.NewUUID())
	cmd, err := commands.NewCompleteOrderCommand(pendingOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotClaimed)
}

func TestCompleteOrderCommandHandler_Handle_ConcurrentCompletion(t *testing.T) {
	ctx := t.Context()

	deliverer := mustNewCourier("Bob", "bob@example.com")
	processingOrder := claimedOrderFixture(t, deliverer.ID())

	cmd, err := commands.NewCompleteOrderCommand(processingOrder.ID(), deliverer.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, processingOrder.ID()).Return(processingOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.Processing).
			Return(ports.ErrConcurrentUpdate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyCompleted)
}
