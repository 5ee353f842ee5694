package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository is the persistence contract for courier aggregates.
// The money counters are mutated only through the Apply* operations, each
// of which is a single atomic statement, never a read-modify-write split
// across two round trips.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists profile changes (name, phone, blocked flag).
	// The money counters are not written here.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// ApplyDeliveryCredit atomically increments balance and total_earned
	// by amount and total_deliveries by one. Called in the deliver
	// transaction, alongside the ledger entry insert.
	ApplyDeliveryCredit(ctx context.Context, id kernel.UUID, amount int64) error

	// ApplyDebit atomically decrements balance by amount, guarded by
	// "... AND balance >= amount". Returns courier.ErrInsufficientBalance
	// when the guard fails for an existing courier, so the balance can
	// never go negative no matter how many debits race.
	ApplyDebit(ctx context.Context, id kernel.UUID, amount int64) error

	// ApplyAdjustment atomically adds a signed amount to balance and, for
	// positive amounts, to total_earned. Negative adjustments use the same
	// balance guard as ApplyDebit.
	ApplyAdjustment(ctx context.Context, id kernel.UUID, amount int64) error
}
