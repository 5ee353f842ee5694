package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetClaimableOrdersQueryHandler lists published orders for the courier's
// vehicle class, oldest first.
type GetClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetClaimableOrdersQueryHandler creates a handler for claimable order listings.
func NewGetClaimableOrdersQueryHandler(db *gorm.DB) GetClaimableOrdersQueryHandler {
	return GetClaimableOrdersQueryHandler{db: db}
}

// Handle executes the listing. Published orders are returned oldest first
// so the longest-waiting jobs surface at the top.
func (h GetClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClaimableOrdersQuery,
) ([]GetClaimableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetClaimableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			sender_address,
			receiver_address,
			distance_km,
			price_payout,
			published_at
		FROM orders
		WHERE status = ? AND vehicle_class = ?
		ORDER BY published_at
		LIMIT ?
	`, order.Published, query.VehicleClass(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetClaimableOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.PickupAddress,
			&resp.DropAddress,
			&resp.DistanceKm,
			&resp.Payout,
			&resp.PublishedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
