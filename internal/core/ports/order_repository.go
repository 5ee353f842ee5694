// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories, the unit of work, and the external
// collaborators (notifier, distance estimator).
package ports

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrStaleState is returned by conditional updates that matched zero rows:
// another writer already moved the aggregate past the expected state.
// Losing such a race is an expected outcome, not a fault, and is never
// logged as an error.
var ErrStaleState = errors.New("state changed concurrently")

// OrderRepository is the persistence contract for order aggregates and
// their status history. All transitions go through UpdateIf so that two
// concurrent writers can never both succeed on the same move.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// NextNumber draws the next value from the store's monotonic order
	// number sequence. Duplicate-intolerant, gap-tolerant: a rolled-back
	// creation burns its number.
	NextNumber(ctx context.Context) (int64, error)

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-facing number.
	GetByNumber(ctx context.Context, number int64) (*order.Order, error)

	// UpdateIf persists the aggregate's current state with a single
	// conditional update: "... WHERE id = ? AND status = <expected>".
	// Returns ErrStaleState when zero rows matched, meaning a concurrent
	// writer already moved the order out of the expected status.
	UpdateIf(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// AppendHistory inserts one status history row. Called in the same
	// transaction as the transition it records.
	AppendHistory(ctx context.Context, entry order.HistoryEntry) error

	// GetHistory returns the append-only history of an order, oldest first.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)

	// FindClaimable returns up to limit published orders for the given
	// vehicle class, locking each candidate row without waiting on rows
	// another claimer is already deciding on (SKIP LOCKED semantics).
	FindClaimable(ctx context.Context, vehicleClass kernel.VehicleClass, limit int) ([]*order.Order, error)

	// FindPublishedBefore returns published orders whose published_at is
	// older than the cutoff. Used by the expiry sweeper.
	FindPublishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
