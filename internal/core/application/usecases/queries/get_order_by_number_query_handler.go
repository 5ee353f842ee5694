package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByNumberQueryHandler serves the public order lookup. Reads go
// straight to SQL, bypassing the aggregate, since no invariant is touched.
type GetOrderByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByNumberQueryHandler creates a handler for public order lookups.
func NewGetOrderByNumberQueryHandler(db *gorm.DB) GetOrderByNumberQueryHandler {
	return GetOrderByNumberQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no order
// carries the requested number.
func (h GetOrderByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByNumberQuery,
) (GetOrderByNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			status,
			vehicle_class,
			receiver_address,
			distance_km,
			price_total,
			courier_id,
			created_at,
			delivered_at
		FROM orders
		WHERE number = ?
	`, query.Number()).Row()

	var resp GetOrderByNumberQueryResponse
	var status, vehicleClass int
	var courierID sql.NullString

	err := row.Scan(
		&resp.Number,
		&status,
		&vehicleClass,
		&resp.ReceiverAddress,
		&resp.DistanceKm,
		&resp.TotalPrice,
		&courierID,
		&resp.CreatedAt,
		&resp.DeliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByNumberQueryResponse{},
			errs.NewObjectNotFoundError("orderNumber", query.Number())
	}
	if err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	resp.Status = order.Status(status).String()
	resp.VehicleClass = kernel.VehicleClass(vehicleClass).String()
	resp.CourierAssigned = courierID.Valid

	return resp, nil
}
