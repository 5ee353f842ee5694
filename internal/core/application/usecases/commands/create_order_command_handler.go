package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler registers a new order: it asks the distance
// estimator once, fixes the price through the calculator, draws the next
// order number from the store's sequence and persists the order in New
// status together with its first history row.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	estimator  ports.DistanceEstimator
	calculator services.PriceCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	estimator ports.DistanceEstimator,
	calculator services.PriceCalculator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		calculator: calculator,
	}
}

// Handle processes the order creation command and returns the created
// order snapshot.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	distanceKm, err := h.estimator.EstimateKm(ctx, cmd.Sender().Address(), cmd.Receiver().Address())
	if err != nil {
		return nil, err
	}

	var price order.Price
	if manual := cmd.ManualTotal(); manual != nil {
		price, err = h.calculator.QuoteManual(*manual)
	} else {
		price, err = h.calculator.Quote(distanceKm, cmd.VehicleClass(), cmd.IsNightWindow())
	}
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	number, err := orderRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), number, cmd.Sender(), cmd.Receiver(),
		cmd.VehicleClass(), distanceKm, price,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(aggregate.ID(), order.New, order.ActorOperator, nil, "")
	if err != nil {
		return nil, err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
