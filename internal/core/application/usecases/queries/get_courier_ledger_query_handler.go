package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierLedgerQueryHandler reads a courier's ledger rows.
type GetCourierLedgerQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierLedgerQueryHandler creates a handler for courier ledger queries.
func NewGetCourierLedgerQueryHandler(db *gorm.DB) GetCourierLedgerQueryHandler {
	return GetCourierLedgerQueryHandler{db: db}
}

// Handle executes the query, returning entries newest first.
func (h GetCourierLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetCourierLedgerQuery,
) ([]GetCourierLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetCourierLedgerQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			amount,
			order_id,
			reference,
			occurred_at
		FROM ledger_entries
		WHERE courier_id = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`, query.CourierID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCourierLedgerQueryResponse
		var id uuid.UUID
		var kind int
		var orderID sql.Null[uuid.UUID]

		err = rows.Scan(
			&id,
			&kind,
			&resp.Amount,
			&orderID,
			&resp.Reference,
			&resp.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = entryID
		resp.Kind = ledger.EntryKind(kind).String()

		if orderID.Valid {
			oID, idErr := kernel.UUIDFromBytes(orderID.V[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.OrderID = &oID
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
