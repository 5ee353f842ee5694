package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierLedgerQueryIsNotConstructed = errors.New(
		"GetCourierLedgerQuery must be created via NewGetCourierLedgerQuery constructor",
	)
)

const defaultLedgerLimit = 100

// GetCourierLedgerQuery retrieves a courier's ledger entries, newest
// first. Together with the balance query it lets a courier audit every
// movement of their money.
type GetCourierLedgerQuery struct {
	courierID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

// NewGetCourierLedgerQuery creates a ledger query for the given courier.
// A non-positive limit falls back to the default.
func NewGetCourierLedgerQuery(courierID kernel.UUID, limit int) (GetCourierLedgerQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierLedgerQuery{}, err
	}
	if limit <= 0 {
		limit = defaultLedgerLimit
	}
	return GetCourierLedgerQuery{
		courierID: courierID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierLedgerQueryIsNotConstructed if validation fails.
func (q GetCourierLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierLedgerQueryIsNotConstructed)
}

// CourierID returns the courier whose ledger is requested.
func (q GetCourierLedgerQuery) CourierID() kernel.UUID { return q.courierID }

// Limit returns the page size.
func (q GetCourierLedgerQuery) Limit() int { return q.limit }

// GetCourierLedgerQueryResponse is one signed ledger row. OrderID is set
// for delivery credits, Reference for debits and adjustments.
type GetCourierLedgerQueryResponse struct {
	ID         kernel.UUID
	Kind       string
	Amount     int64
	OrderID    *kernel.UUID
	Reference  string
	OccurredAt time.Time
}
