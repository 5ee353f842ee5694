package commands

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
)

// AdjustBalanceCommandHandler applies an operator correction to a courier's
// balance. The cached balance and the ledger entry move in one transaction.
// Negative adjustments go through the same guarded update as payouts, so a
// correction can never push a balance below zero.
type AdjustBalanceCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdjustBalanceCommandHandler creates a handler for balance corrections.
func NewAdjustBalanceCommandHandler(uowFactory UoWFactory) AdjustBalanceCommandHandler {
	return AdjustBalanceCommandHandler{uowFactory: uowFactory}
}

// Handle records the adjustment.
func (h AdjustBalanceCommandHandler) Handle(ctx context.Context, cmd AdjustBalanceCommand) error {
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

	courierRepo := uow.CourierRepository()

	if _, err := courierRepo.Get(ctx, cmd.CourierID()); err != nil {
		return err
	}

	var err error
	if cmd.Amount() < 0 {
		err = courierRepo.ApplyDebit(ctx, cmd.CourierID(), -cmd.Amount())
	} else {
		err = courierRepo.ApplyAdjustment(ctx, cmd.CourierID(), cmd.Amount())
	}
	if err != nil {
		return err
	}

	entry, err := ledger.NewManualAdjustment(cmd.CourierID(), cmd.Note(), cmd.Amount())
	if err != nil {
		return err
	}
	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
