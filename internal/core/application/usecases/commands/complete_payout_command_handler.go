package commands

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
)

// CompletePayoutCommandHandler pays out an approved request. The balance
// debit, the ledger entry and the status change share one transaction, so
// the books either all move or none do.
type CompletePayoutCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompletePayoutCommandHandler creates a handler for completing payouts.
func NewCompletePayoutCommandHandler(uowFactory UoWFactory) CompletePayoutCommandHandler {
	return CompletePayoutCommandHandler{uowFactory: uowFactory}
}

// Handle completes the payout. The guarded balance update fails with
// courier.ErrInsufficientBalance when the balance dropped below the
// requested amount after approval; the request then stays approved and
// nothing is debited.
func (h CompletePayoutCommandHandler) Handle(ctx context.Context, cmd CompletePayoutCommand) error {
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

	if err = request.Complete(); err != nil {
		return err
	}

	if err = uow.CourierRepository().ApplyDebit(ctx, request.CourierID(), request.Amount()); err != nil {
		return err
	}

	entry, err := ledger.NewPayoutDebit(request.CourierID(), request.ID().String(), request.Amount())
	if err != nil {
		return err
	}
	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = uow.LedgerRepository().UpdatePayoutRequestIf(ctx, request, ledger.PayoutApproved); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
