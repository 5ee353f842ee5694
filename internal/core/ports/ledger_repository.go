package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
)

// ErrDuplicateCredit is returned when a second delivery_credit entry for
// the same order hits the ledger's uniqueness constraint. It signals a
// double-payment bug: the offending operation must halt, never "fix".
var ErrDuplicateCredit = errors.New("duplicate delivery credit for order")

// LedgerRepository is the persistence contract for the append-only
// earnings ledger and the payout request workflow.
type LedgerRepository interface {
	// Append inserts one ledger entry. A delivery credit that collides
	// with an existing credit for the same order fails with
	// ErrDuplicateCredit via the database constraint.
	Append(ctx context.Context, entry ledger.Entry) error

	// SumForCourier recomputes the courier's balance as the signed sum of
	// all their entries. Used by reconciliation as the source of truth.
	SumForCourier(ctx context.Context, courierID kernel.UUID) (int64, error)

	// ListForCourier returns the courier's entries, newest first.
	ListForCourier(ctx context.Context, courierID kernel.UUID, limit int) ([]ledger.Entry, error)

	// AddPayoutRequest persists a new payout request.
	AddPayoutRequest(ctx context.Context, request *ledger.PayoutRequest) error

	// GetPayoutRequest retrieves a payout request by identifier.
	GetPayoutRequest(ctx context.Context, id kernel.UUID) (*ledger.PayoutRequest, error)

	// UpdatePayoutRequestIf persists the request's current state guarded
	// by the expected prior status. Returns ErrStaleState when zero rows
	// matched, e.g. two admins approving simultaneously.
	UpdatePayoutRequestIf(ctx context.Context, request *ledger.PayoutRequest, expected ledger.PayoutStatus) error
}
