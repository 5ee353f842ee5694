package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// PublishOrderCommandHandler moves an order New -> Published so the
// courier pool can see and claim it.
type PublishOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewPublishOrderCommandHandler creates a handler for publishing orders.
func NewPublishOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) PublishOrderCommandHandler {
	return PublishOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle publishes the order. A concurrent writer that already moved the
// order surfaces as ports.ErrStaleState from the conditional update.
func (h PublishOrderCommandHandler) Handle(ctx context.Context, cmd PublishOrderCommand) error {
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

	from := aggregate.Status()
	if err = aggregate.Publish(); err != nil {
		return err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, from); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(aggregate.ID(), aggregate.Status(), order.ActorOperator, nil, "")
	if err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Fire-and-forget: notification failures never undo the transition.
	_ = h.notifier.PublishOrderChanged(ctx, ports.NewOrderEvent(aggregate, from, order.ActorOperator, nil))

	return nil
}
