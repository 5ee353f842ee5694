// Package commands contains the write-side business operations of the
// dispatch core. Every handler follows the same shape: validate the
// command, open a unit of work, run the transition through the domain
// model and the conditional repository update, commit, then emit the
// domain event. Events never fail a committed transition.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces scoped to what each handler actually touches.
type (
	// TxManager handles the transaction lifecycle. BeginSnapshot is the
	// read-only variant where every read sees one database snapshot.
	TxManager interface {
		Begin(ctx context.Context) error
		BeginSnapshot(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// LedgerRepoFactory provides the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across orders, couriers and the ledger.
	// Used by claim, deliver and the payout workflow, where one transition
	// touches several aggregates atomically.
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		LedgerRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
