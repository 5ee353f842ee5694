package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the order's status history rows.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query, returning history rows oldest first. An order
// with no rows yields an empty slice, not an error.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			actor_type,
			actor_id,
			note,
			occurred_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderHistoryQueryResponse
		var status, actorType int
		var actorID sql.Null[uuid.UUID]

		err = rows.Scan(
			&status,
			&actorType,
			&actorID,
			&resp.Note,
			&resp.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		resp.Status = order.Status(status).String()
		resp.Actor = order.ActorType(actorType).String()

		if actorID.Valid {
			aID, idErr := kernel.UUIDFromBytes(actorID.V[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.ActorID = &aID
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
