package commands

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
)

// RequestPayoutCommandHandler files a payout request for a courier.
type RequestPayoutCommandHandler struct {
	uowFactory UoWFactory
}

// NewRequestPayoutCommandHandler creates a handler for filing payout requests.
func NewRequestPayoutCommandHandler(uowFactory UoWFactory) RequestPayoutCommandHandler {
	return RequestPayoutCommandHandler{uowFactory: uowFactory}
}

// Handle verifies the courier exists, then records a pending payout
// request. Funds are not reserved until completion.
func (h RequestPayoutCommandHandler) Handle(ctx context.Context, cmd RequestPayoutCommand) (*ledger.PayoutRequest, error) {
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

	if _, err := uow.CourierRepository().Get(ctx, cmd.CourierID()); err != nil {
		return nil, err
	}

	request, err := ledger.NewPayoutRequest(cmd.PayoutID(), cmd.CourierID(), cmd.Amount())
	if err != nil {
		return nil, err
	}

	if err = uow.LedgerRepository().AddPayoutRequest(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
