package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetClaimableOrdersQueryIsNotConstructed = errors.New(
		"GetClaimableOrdersQuery must be created via NewGetClaimableOrdersQuery constructor",
	)
)

const defaultClaimableLimit = 50

// GetClaimableOrdersQuery lists published orders a courier could claim.
// This is the browse view only; the actual claim races through the command
// side and may still lose.
//
// Example:
//
//	query, err := NewGetClaimableOrdersQuery(kernel.VehicleCar, 20)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetClaimableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list claimable orders: %w", err)
//	}
//
//	fmt.Printf("%d orders open for claiming\n", len(orders))
type GetClaimableOrdersQuery struct {
	vehicleClass kernel.VehicleClass
	limit        int

	guard guard.ConstructorGuard
}

// NewGetClaimableOrdersQuery creates a query for published orders matching
// the vehicle class. A non-positive limit falls back to the default.
func NewGetClaimableOrdersQuery(vehicleClass kernel.VehicleClass, limit int) (GetClaimableOrdersQuery, error) {
	if err := vehicleClass.Validate(); err != nil {
		return GetClaimableOrdersQuery{}, err
	}
	if limit <= 0 {
		limit = defaultClaimableLimit
	}
	return GetClaimableOrdersQuery{
		vehicleClass: vehicleClass,
		limit:        limit,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetClaimableOrdersQueryIsNotConstructed if validation fails.
func (q GetClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersQueryIsNotConstructed)
}

// VehicleClass returns the class filter.
func (q GetClaimableOrdersQuery) VehicleClass() kernel.VehicleClass { return q.vehicleClass }

// Limit returns the page size.
func (q GetClaimableOrdersQuery) Limit() int { return q.limit }

// GetClaimableOrdersQueryResponse is the courier-facing listing row. The
// payout is shown so couriers can judge the job; the full price split is not.
type GetClaimableOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        int64
	PickupAddress string
	DropAddress   string
	DistanceKm    float64
	Payout        int64
	PublishedAt   time.Time
}
