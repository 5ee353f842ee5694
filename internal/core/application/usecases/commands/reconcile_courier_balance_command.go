package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrReconcileCourierBalanceCommandIsNotConstructed is returned when the
// command was not created via NewReconcileCourierBalanceCommand.
var ErrReconcileCourierBalanceCommandIsNotConstructed = errors.New(
	"ReconcileCourierBalanceCommand must be created via NewReconcileCourierBalanceCommand constructor",
)

// ReconcileCourierBalanceCommand checks a courier's cached balance against
// the sum of their ledger entries.
type ReconcileCourierBalanceCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReconcileCourierBalanceCommand creates a validated reconciliation command.
func NewReconcileCourierBalanceCommand(courierID kernel.UUID) (ReconcileCourierBalanceCommand, error) {
	if err := courierID.Validate(); err != nil {
		return ReconcileCourierBalanceCommand{}, err
	}

	return ReconcileCourierBalanceCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileCourierBalanceCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCourierBalanceCommandIsNotConstructed)
}

// CourierID returns the courier to reconcile.
func (c ReconcileCourierBalanceCommand) CourierID() kernel.UUID { return c.courierID }
