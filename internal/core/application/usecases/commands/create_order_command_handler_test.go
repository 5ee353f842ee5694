package commands_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDistanceEstimator struct{ mock.Mock }

func (m *MockDistanceEstimator) EstimateKm(ctx context.Context, fromAddress, toAddress string) (float64, error) {
	args := m.Called(ctx, fromAddress, toAddress)
	return args.Get(0).(float64), args.Error(1)
}

func testPriceCalculator(t *testing.T) services.PriceCalculator {
	t.Helper()

	tariff, err := services.NewTariff(70, 3, 0, 0.18, 0.25, 1.5, nil)
	require.NoError(t, err)
	calc, err := services.NewPriceCalculator(tariff)
	require.NoError(t, err)
	return calc
}

func newCreateOrderCommand(t *testing.T, manualTotal *int64) commands.CreateOrderCommand {
	t.Helper()

	sender, err := kernel.NewContact("Sender", "+15550001111", "12 Main St")
	require.NoError(t, err)
	receiver, err := kernel.NewContact("Receiver", "+15550002222", "34 Side St")
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), sender, receiver, kernel.VehicleMotorcycle, false, manualTotal)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, nil)

	estimator := new(MockDistanceEstimator)
	estimator.On("EstimateKm", ctx, "12 Main St", "34 Side St").Return(12.0, nil).Once()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("NextNumber", ctx).Return(int64(7), nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, estimator, testPriceCalculator(t))
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.New, created.Status())
	assert.Equal(t, int64(7), created.Number())
	assert.InDelta(t, 12.0, created.DistanceKm(), 0.0001)
	assert.Equal(t, int64(126), created.Price().Total())
	assert.Equal(t, int64(95), created.Price().Payout())

	estimator.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ManualTotal(t *testing.T) {
	ctx := t.Context()
	manual := int64(200)
	cmd := newCreateOrderCommand(t, &manual)

	estimator := new(MockDistanceEstimator)
	estimator.On("EstimateKm", ctx, "12 Main St", "34 Side St").Return(12.0, nil).Once()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("NextNumber", ctx).Return(int64(8), nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, estimator, testPriceCalculator(t))
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(200), created.Price().Total())
	assert.Equal(t, created.Price().Total(), created.Price().Commission()+created.Price().Payout())
}

func TestCreateOrderCommandHandler_Handle_EstimatorError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, nil)

	estimator := new(MockDistanceEstimator)
	estimator.On("EstimateKm", ctx, "12 Main St", "34 Side St").
		Return(0.0, errors.New("geo service unavailable")).Once()

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, estimator, testPriceCalculator(t))

	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "geo service unavailable")
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, new(MockDistanceEstimator), testPriceCalculator(t))

	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}
