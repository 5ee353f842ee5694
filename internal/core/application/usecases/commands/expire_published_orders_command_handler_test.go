package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpirePublishedOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	first := publishedOrderFixture(t)
	second := publishedOrderFixture(t)

	cmd, err := commands.NewExpirePublishedOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("FindPublishedBefore", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("int")).
			Return([]*order.Order{first, second}, nil).Once(),
		orderRepo.On("UpdateIf", ctx, first, order.Published).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		orderRepo.On("UpdateIf", ctx, second, order.Published).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Twice()

	handler := commands.NewExpirePublishedOrdersCommandHandler(factory, notifier)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, order.Cancelled, first.Status())
	assert.Equal(t, order.Cancelled, second.Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExpirePublishedOrdersCommandHandler_Handle_SkipsClaimedOrder(t *testing.T) {
	ctx := t.Context()

	claimed := publishedOrderFixture(t)
	stale := publishedOrderFixture(t)

	cmd, err := commands.NewExpirePublishedOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("FindPublishedBefore", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("int")).
			Return([]*order.Order{claimed, stale}, nil).Once(),
		orderRepo.On("UpdateIf", ctx, claimed, order.Published).Return(ports.ErrStaleState).Once(),
		orderRepo.On("UpdateIf", ctx, stale, order.Published).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Once()

	handler := commands.NewExpirePublishedOrdersCommandHandler(factory, notifier)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExpirePublishedOrdersCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewExpirePublishedOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("FindPublishedBefore", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("int")).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	handler := commands.NewExpirePublishedOrdersCommandHandler(factory, notifier)

	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	notifier.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything)
}

func TestNewExpirePublishedOrdersCommand_NonPositiveThreshold(t *testing.T) {
	_, err := commands.NewExpirePublishedOrdersCommand(0)
	require.Error(t, err)

	_, err = commands.NewExpirePublishedOrdersCommand(-time.Minute)
	require.Error(t, err)
}
