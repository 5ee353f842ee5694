package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CancelOrderCommandHandler cancels a non-terminal order. Cancelling an
// already-cancelled order succeeds as a no-op without side effects;
// cancelling a delivered order fails with order.ErrInvalidTransition.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle cancels the order. "Cancel racing claim" needs no special case:
// whichever conditional update commits first wins, the other observes
// ports.ErrStaleState and nothing partial ever persists.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err = aggregate.Cancel(); err != nil {
		if errors.Is(err, order.ErrAlreadyCancelled) {
			return nil
		}
		return err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, from); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(aggregate.ID(), aggregate.Status(), cmd.ActorType(), cmd.ActorID(), cmd.Note())
	if err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	var actorID *string
	if id := cmd.ActorID(); id != nil {
		s := id.String()
		actorID = &s
	}
	_ = h.notifier.PublishOrderChanged(ctx, ports.NewOrderEvent(aggregate, from, cmd.ActorType(), actorID))

	return nil
}
