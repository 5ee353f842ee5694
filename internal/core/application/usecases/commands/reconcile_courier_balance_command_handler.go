package commands

import (
	"context"
)

// ReconciliationReport is the outcome of comparing a courier's cached
// balance with the sum of their ledger entries.
type ReconciliationReport struct {
	CourierID     string
	CachedBalance int64
	LedgerSum     int64
}

// Consistent reports whether the cached balance matches the ledger.
func (r ReconciliationReport) Consistent() bool {
	return r.CachedBalance == r.LedgerSum
}

// ReconcileCourierBalanceCommandHandler detects drift between the cached
// courier balance and the ledger. Drift indicates a bug or a manual
// database edit; the handler only reports it. Repair is an operator
// decision made through a manual adjustment.
type ReconcileCourierBalanceCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileCourierBalanceCommandHandler creates a handler for balance reconciliation.
func NewReconcileCourierBalanceCommandHandler(uowFactory UoWFactory) ReconcileCourierBalanceCommandHandler {
	return ReconcileCourierBalanceCommandHandler{uowFactory: uowFactory}
}

// Handle reads both figures inside one read-only snapshot transaction,
// so a delivery committing between the two reads cannot fake a mismatch.
// A real mismatch is reported alongside ErrBalanceMismatch; the stored
// data is never modified.
func (h ReconcileCourierBalanceCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileCourierBalanceCommand,
) (ReconciliationReport, error) {
	if err := cmd.Validate(); err != nil {
		return ReconciliationReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.BeginSnapshot(ctx); err != nil {
		return ReconciliationReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return ReconciliationReport{}, err
	}

	sum, err := uow.LedgerRepository().SumForCourier(ctx, cmd.CourierID())
	if err != nil {
		return ReconciliationReport{}, err
	}

	report := ReconciliationReport{
		CourierID:     cmd.CourierID().String(),
		CachedBalance: aggregate.Balance(),
		LedgerSum:     sum,
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconciliationReport{}, err
	}

	if !report.Consistent() {
		return report, ErrBalanceMismatch
	}
	return report, nil
}
