package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// claimCandidateLimit caps how many published orders one take-any attempt
// walks through before giving up.
const claimCandidateLimit = 10

// ClaimNextOrderCommandHandler claims the next available published order
// for a courier. Candidate selection uses a non-blocking row lock that
// skips rows another claimer is already deciding on, and a candidate lost
// to a race is skipped rather than retried; two automated claimers can
// never livelock on one contested order.
type ClaimNextOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewClaimNextOrderCommandHandler creates a handler for take-any claims.
func NewClaimNextOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ClaimNextOrderCommandHandler {
	return ClaimNextOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle claims the first candidate that is still published, returning the
// claimed order snapshot. ErrNoClaimableOrders means every candidate was
// gone or none existed.
func (h ClaimNextOrderCommandHandler) Handle(ctx context.Context, cmd ClaimNextOrderCommand) (*order.Order, error) {
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

	candidates, err := orderRepo.FindClaimable(ctx, claimer.VehicleClass(), claimCandidateLimit)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		from := candidate.Status()
		if err = candidate.Assign(cmd.CourierID()); err != nil {
			continue
		}

		if err = orderRepo.UpdateIf(ctx, candidate, from); err != nil {
			if errors.Is(err, ports.ErrStaleState) {
				// Lost this row, move to the next candidate.
				continue
			}
			return nil, err
		}

		courierID := cmd.CourierID()
		entry, historyErr := order.NewHistoryEntry(candidate.ID(), candidate.Status(), order.ActorCourier, &courierID, "")
		if historyErr != nil {
			return nil, historyErr
		}
		if err = orderRepo.AppendHistory(ctx, entry); err != nil {
			return nil, err
		}

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}

		actorID := courierID.String()
		_ = h.notifier.PublishOrderChanged(ctx, ports.NewOrderEvent(candidate, from, order.ActorCourier, &actorID))

		return candidate, nil
	}

	return nil, ErrNoClaimableOrders
}
