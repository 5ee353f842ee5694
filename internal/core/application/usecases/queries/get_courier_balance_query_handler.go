package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierBalanceQueryHandler reads the courier's cached balance and
// lifetime stats, plus the sum of their unresolved payout requests.
type GetCourierBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierBalanceQueryHandler creates a handler for balance queries.
func NewGetCourierBalanceQueryHandler(db *gorm.DB) GetCourierBalanceQueryHandler {
	return GetCourierBalanceQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the
// courier does not exist.
func (h GetCourierBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetCourierBalanceQuery,
) (GetCourierBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierBalanceQueryResponse{}, err
	}

	resp := GetCourierBalanceQueryResponse{CourierID: query.CourierID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT balance, total_deliveries, total_earned
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Row()

	err := row.Scan(&resp.Balance, &resp.TotalDeliveries, &resp.TotalEarned)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCourierBalanceQueryResponse{},
			errs.NewObjectNotFoundError("courierID", query.CourierID())
	}
	if err != nil {
		return GetCourierBalanceQueryResponse{}, err
	}

	row = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM payout_requests
		WHERE courier_id = ? AND status IN (?, ?)
	`, query.CourierID().Bytes(), ledger.PayoutPending, ledger.PayoutApproved).Row()

	if err := row.Scan(&resp.PendingPayouts); err != nil {
		return GetCourierBalanceQueryResponse{}, err
	}

	return resp, nil
}
