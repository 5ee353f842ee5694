package commands

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// DeliverOrderCommandHandler moves an order PickedUp -> Delivered and
// credits the courier's payout in the same transaction. A delivery marked
// without its ledger credit, or a credit without its delivery, can never
// persist: both either commit together or roll back together.
//
// Retries are safe: a second deliver call finds the order already moved
// and fails the conditional update without a second credit, and even a
// logic bug that reached the ledger twice would be stopped by the
// delivery_credit uniqueness constraint (ports.ErrDuplicateCredit).
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewDeliverOrderCommandHandler creates a handler for deliveries.
func NewDeliverOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle records the delivery and the payout credit atomically.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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
	if err = aggregate.Deliver(); err != nil {
		return err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, from); err != nil {
		return err
	}

	payout := aggregate.Price().Payout()

	credit, err := ledger.NewDeliveryCredit(cmd.CourierID(), aggregate.ID(), payout)
	if err != nil {
		return err
	}
	if err = uow.LedgerRepository().Append(ctx, credit); err != nil {
		return err
	}

	if err = uow.CourierRepository().ApplyDeliveryCredit(ctx, cmd.CourierID(), payout); err != nil {
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
