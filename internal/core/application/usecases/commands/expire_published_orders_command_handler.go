package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// expireBatchLimit caps how many stale orders one sweep processes.
const expireBatchLimit = 100

// ExpirePublishedOrdersCommandHandler is the sweeper's entry point: an
// idempotent batch cancel of orders that sat published past the threshold.
// Safe to run concurrently with itself and with claims: each order's
// expiry is the same conditional cancel as everywhere else, so a courier
// claiming at the same instant simply wins or loses that one row.
type ExpirePublishedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewExpirePublishedOrdersCommandHandler creates the sweep handler.
func NewExpirePublishedOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ExpirePublishedOrdersCommandHandler {
	return ExpirePublishedOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle expires stale published orders and returns how many it actually
// cancelled. Orders lost to concurrent claims are skipped, not errors.
func (h ExpirePublishedOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ExpirePublishedOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	cutoff := time.Now().UTC().Add(-cmd.Threshold())
	stale, err := orderRepo.FindPublishedBefore(ctx, cutoff, expireBatchLimit)
	if err != nil {
		return 0, err
	}

	expired := make([]*order.Order, 0, len(stale))
	for _, aggregate := range stale {
		from := aggregate.Status()
		if err = aggregate.Cancel(); err != nil {
			continue
		}

		if err = orderRepo.UpdateIf(ctx, aggregate, from); err != nil {
			if errors.Is(err, ports.ErrStaleState) {
				// A courier claimed this one in the same instant; their win stands.
				continue
			}
			return 0, err
		}

		entry, historyErr := order.NewHistoryEntry(
			aggregate.ID(), aggregate.Status(), order.ActorSystem, nil, "published too long")
		if historyErr != nil {
			return 0, historyErr
		}
		if err = orderRepo.AppendHistory(ctx, entry); err != nil {
			return 0, err
		}

		expired = append(expired, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range expired {
		_ = h.notifier.PublishOrderChanged(ctx, ports.NewOrderEvent(aggregate, order.Published, order.ActorSystem, nil))
	}

	return len(expired), nil
}
