package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// PickupOrderCommandHandler moves an order Assigned -> PickedUp on behalf
// of its assigned courier.
type PickupOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewPickupOrderCommandHandler creates a handler for pickups.
func NewPickupOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle records the pickup. A courier that is not the assignee is
// rejected with ErrNotOrderAssignee; a concurrent transition (e.g. an
// operator cancelling at the same instant) surfaces as ports.ErrStaleState.
func (h PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignee := aggregate.Courier()
	if assignee == nil || !assignee.IsEqual(cmd.CourierID()) {
		return ErrNotOrderAssignee
	}

	from := aggregate.Status()
	if err = aggregate.Pickup(); err != nil {
		return err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, from); err != nil {
		return err
	}

	courierID := cmd.CourierID()
	entry, err := order.NewHistoryEntry(aggregate.ID(), aggregate.Status(), order.ActorCourier, &courierID, "")
	if err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	actorID := courierID.String()
	_ = h.notifier.PublishOrderChanged(ctx, ports.NewOrderEvent(aggregate, from, order.ActorCourier, &actorID))

	return nil
}
