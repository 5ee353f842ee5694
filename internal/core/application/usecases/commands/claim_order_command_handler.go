package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ClaimOrderCommandHandler is the claim coordinator: under N concurrent
// claims on one published order, exactly one courier wins and every other
// caller gets ErrOrderAlreadyTaken.
//
// The blocked-courier check runs inside the same transaction as the
// conditional status update, so an operator blocking a courier cannot race
// a claim into an inconsistent state. The exactly-one-winner guarantee is
// the store's row-level locking on the single conditional UPDATE.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewClaimOrderCommandHandler creates a handler for claim attempts.
func NewClaimOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle attempts the claim and returns the claimed order snapshot on
// success, so the caller can notify the winning courier. Losing the race
// returns ErrOrderAlreadyTaken; a blocked courier returns
// courier.ErrCourierBlocked. Neither leaves any trace on the order.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	claimer, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}
	if err = claimer.EnsureCanClaim(); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := aggregate.Status()
	if err = aggregate.Assign(cmd.CourierID()); err != nil {
		// An order that left Published is a definitive loss. One never
		// published was not claimable in the first place, which is not
		// the same story for the courier.
		if errors.Is(err, order.ErrInvalidTransition) && from != order.New {
			return nil, ErrOrderAlreadyTaken
		}
		return nil, err
	}

	if err = orderRepo.UpdateIf(ctx, aggregate, from); err != nil {
		if errors.Is(err, ports.ErrStaleState) {
			return nil, ErrOrderAlreadyTaken
		}
		return nil, err
	}

	courierID := cmd.CourierID()
	entry, err := order.NewHistoryEntry(aggregate.ID(), aggregate.Status(), order.ActorCourier, &courierID, "")
	if err != nil {
		return nil, err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	actorID := courierID.String()
	_ = h.notifier.PublishOrderChanged(ctx, ports.NewOrderEvent(aggregate, from, order.ActorCourier, &actorID))

	return aggregate, nil
}
