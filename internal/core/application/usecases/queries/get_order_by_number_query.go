package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrderByNumberQueryIsNotConstructed = errors.New(
		"GetOrderByNumberQuery must be created via NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderByNumberQuery retrieves the public view of one order by its
// human-readable number. The projection is what a sender or receiver may
// see: it carries the total price but never the commission split.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery(1042)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderByNumberQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %d is %s\n", view.Number, view.Status)
type GetOrderByNumberQuery struct {
	number int64

	guard guard.ConstructorGuard
}

// NewGetOrderByNumberQuery creates a query for the given order number.
func NewGetOrderByNumberQuery(number int64) (GetOrderByNumberQuery, error) {
	if number <= 0 {
		return GetOrderByNumberQuery{}, errors.New("order number must be greater than 0")
	}
	return GetOrderByNumberQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByNumberQueryIsNotConstructed if validation fails.
func (q GetOrderByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByNumberQueryIsNotConstructed)
}

// Number returns the requested order number.
func (q GetOrderByNumberQuery) Number() int64 { return q.number }

// GetOrderByNumberQueryResponse is the public order projection. Courier
// identity is reduced to an assignment flag and the price to the total;
// commission and payout stay internal.
type GetOrderByNumberQueryResponse struct {
	Number          int64
	Status          string
	VehicleClass    string
	ReceiverAddress string
	DistanceKm      float64
	TotalPrice      int64
	CourierAssigned bool
	CreatedAt       time.Time
	DeliveredAt     *time.Time
}
