package commands

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
)

// ResolvePayoutCommandHandler moves a pending payout request to approved
// or rejected. The conditional update guards against two operators
// resolving the same request at once.
type ResolvePayoutCommandHandler struct {
	uowFactory UoWFactory
}

// NewResolvePayoutCommandHandler creates a handler for resolving payout requests.
func NewResolvePayoutCommandHandler(uowFactory UoWFactory) ResolvePayoutCommandHandler {
	return ResolvePayoutCommandHandler{uowFactory: uowFactory}
}

// Handle resolves the payout request. A request no longer pending surfaces
// as ports.ErrStaleState from the conditional update.
func (h ResolvePayoutCommandHandler) Handle(ctx context.Context, cmd ResolvePayoutCommand) error {
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

	request, err := uow.LedgerRepository().GetPayoutRequest(ctx, cmd.PayoutID())
	if err != nil {
		return err
	}

	if cmd.Approve() {
		err = request.Approve()
	} else {
		err = request.Reject()
	}
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().UpdatePayoutRequestIf(ctx, request, ledger.PayoutPending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
