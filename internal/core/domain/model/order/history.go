package order

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ActorType identifies who caused a status transition.
type ActorType int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown ActorType = iota

	// ActorOperator is a dispatcher acting through the admin surface.
	ActorOperator

	// ActorCourier is a courier acting on their own orders.
	ActorCourier

	// ActorSystem is the service itself, e.g. the expiry sweeper.
	ActorSystem
)

func actorTypeStrings() map[ActorType]string {
	return map[ActorType]string{
		ActorOperator: "operator",
		ActorCourier:  "courier",
		ActorSystem:   "system",
	}
}

// Validate checks the value is one of the defined actor types.
func (a ActorType) Validate() error {
	if _, ok := actorTypeStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("actorType",
			fmt.Errorf("%d is not a valid actor type", int(a)))
	}
	return nil
}

// String implements fmt.Stringer.
func (a ActorType) String() string {
	if s, ok := actorTypeStrings()[a]; ok {
		return s
	}
	return "unknown"
}

// HistoryEntry is one append-only row of an order's status history. Entries
// are never updated or deleted; they are the audit trail and the record
// used to detect already-transitioned races after the fact.
type HistoryEntry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	status     Status
	actorType  ActorType
	actorID    *kernel.UUID
	note       string
	occurredAt time.Time

	isConstructed bool
}

// NewHistoryEntry creates a history row for a transition that just
// happened. actorID is nil for system transitions.
func NewHistoryEntry(
	orderID kernel.UUID,
	status Status,
	actorType ActorType,
	actorID *kernel.UUID,
	note string,
) (HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actorType.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}

	return HistoryEntry{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		status:        status,
		actorType:     actorType,
		actorID:       actorID,
		note:          note,
		occurredAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence.
func RestoreHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	actorType ActorType,
	actorID *kernel.UUID,
	note string,
	occurredAt time.Time,
) HistoryEntry {
	return HistoryEntry{
		id:            id,
		orderID:       orderID,
		status:        status,
		actorType:     actorType,
		actorID:       actorID,
		note:          note,
		occurredAt:    occurredAt,
		isConstructed: true,
	}
}

// Validate reports whether the entry was properly constructed.
func (h HistoryEntry) Validate() error {
	if !h.isConstructed {
		return errs.NewValueIsRequiredError("HistoryEntry must be created via NewHistoryEntry")
	}
	return nil
}

// ID returns the entry's identifier.
func (h HistoryEntry) ID() kernel.UUID { return h.id }

// OrderID returns the order this entry belongs to.
func (h HistoryEntry) OrderID() kernel.UUID { return h.orderID }

// Status returns the resulting status of the transition.
func (h HistoryEntry) Status() Status { return h.status }

// ActorType returns who caused the transition.
func (h HistoryEntry) ActorType() ActorType { return h.actorType }

// ActorID returns the acting operator or courier, nil for system actions.
func (h HistoryEntry) ActorID() *kernel.UUID { return h.actorID }

// Note returns the optional free-form note.
func (h HistoryEntry) Note() string { return h.note }

// OccurredAt returns when the transition happened.
func (h HistoryEntry) OccurredAt() time.Time { return h.occurredAt }
