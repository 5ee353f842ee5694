// Package ledger contains the append-only earnings ledger and the payout
// request workflow. Ledger entries are the canonical money record; the
// courier balance column is a cache kept in sync transactionally and
// checked against SUM(entries) by reconciliation.
package ledger

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// EntryKind classifies a ledger entry.
type EntryKind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown EntryKind = iota

	// KindDeliveryCredit is the payout credited on a completed delivery.
	// At most one per order, enforced by a database uniqueness constraint.
	KindDeliveryCredit

	// KindPayoutDebit is a withdrawal against the courier's balance.
	KindPayoutDebit

	// KindManualAdjustment is an operator correction, signed either way.
	KindManualAdjustment
)

func entryKindStrings() map[EntryKind]string {
	return map[EntryKind]string{
		KindDeliveryCredit:   "delivery_credit",
		KindPayoutDebit:      "payout_debit",
		KindManualAdjustment: "manual_adjustment",
	}
}

// Validate checks the value is one of the defined kinds.
func (k EntryKind) Validate() error {
	if _, ok := entryKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entryKind",
			fmt.Errorf("%d is not a valid entry kind", int(k)))
	}
	return nil
}

// String implements fmt.Stringer.
func (k EntryKind) String() string {
	if s, ok := entryKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// Entry is one immutable, signed monetary record attributed to a courier.
// Credits carry a positive amount, debits a negative one, so the courier's
// true balance is always the plain sum of their entries.
type Entry struct {
	id         kernel.UUID
	courierID  kernel.UUID
	orderID    *kernel.UUID
	reference  string
	amount     int64
	kind       EntryKind
	occurredAt time.Time

	isConstructed bool
}

// NewDeliveryCredit creates the payout entry for a completed delivery.
func NewDeliveryCredit(courierID, orderID kernel.UUID, amount int64) (Entry, error) {
	if err := courierID.Validate(); err != nil {
		return Entry{}, err
	}
	if err := orderID.Validate(); err != nil {
		return Entry{}, err
	}
	if amount < 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}

	return Entry{
		id:            kernel.NewUUID(),
		courierID:     courierID,
		orderID:       &orderID,
		amount:        amount,
		kind:          KindDeliveryCredit,
		occurredAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// NewPayoutDebit creates the withdrawal entry for a completed payout
// request. The stored amount is negative; the reference points at the
// payout request.
func NewPayoutDebit(courierID kernel.UUID, reference string, amount int64) (Entry, error) {
	if err := courierID.Validate(); err != nil {
		return Entry{}, err
	}
	if amount <= 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	if reference == "" {
		return Entry{}, errs.NewValueIsRequiredError("reference")
	}

	return Entry{
		id:            kernel.NewUUID(),
		courierID:     courierID,
		reference:     reference,
		amount:        -amount,
		kind:          KindPayoutDebit,
		occurredAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// NewManualAdjustment creates an operator correction entry. The amount is
// signed; zero adjustments are rejected as they record nothing.
func NewManualAdjustment(courierID kernel.UUID, reference string, amount int64) (Entry, error) {
	if err := courierID.Validate(); err != nil {
		return Entry{}, err
	}
	if amount == 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("adjustment amount must be non-zero"))
	}
	if reference == "" {
		return Entry{}, errs.NewValueIsRequiredError("reference")
	}

	return Entry{
		id:            kernel.NewUUID(),
		courierID:     courierID,
		reference:     reference,
		amount:        amount,
		kind:          KindManualAdjustment,
		occurredAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(
	id, courierID kernel.UUID,
	orderID *kernel.UUID,
	reference string,
	amount int64,
	kind EntryKind,
	occurredAt time.Time,
) Entry {
	return Entry{
		id:            id,
		courierID:     courierID,
		orderID:       orderID,
		reference:     reference,
		amount:        amount,
		kind:          kind,
		occurredAt:    occurredAt,
		isConstructed: true,
	}
}

// Validate reports whether the entry was properly constructed.
func (e Entry) Validate() error {
	if !e.isConstructed {
		return errs.NewValueIsRequiredError("Entry must be created via its constructors")
	}
	return e.kind.Validate()
}

// ID returns the entry's identifier.
func (e Entry) ID() kernel.UUID { return e.id }

// CourierID returns the courier the entry is attributed to.
func (e Entry) CourierID() kernel.UUID { return e.courierID }

// OrderID returns the credited order, nil for debits and adjustments.
func (e Entry) OrderID() *kernel.UUID { return e.orderID }

// Reference returns the payout or adjustment reference, empty for credits.
func (e Entry) Reference() string { return e.reference }

// Amount returns the signed amount: positive credit, negative debit.
func (e Entry) Amount() int64 { return e.amount }

// Kind returns the entry classification.
func (e Entry) Kind() EntryKind { return e.kind }

// OccurredAt returns when the entry was recorded.
func (e Entry) OccurredAt() time.Time { return e.occurredAt }
