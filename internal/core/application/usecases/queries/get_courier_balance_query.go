package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierBalanceQueryIsNotConstructed = errors.New(
		"GetCourierBalanceQuery must be created via NewGetCourierBalanceQuery constructor",
	)
)

// GetCourierBalanceQuery retrieves a courier's balance together with their
// lifetime delivery statistics and any pending payout total.
type GetCourierBalanceQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierBalanceQuery creates a balance query for the given courier.
func NewGetCourierBalanceQuery(courierID kernel.UUID) (GetCourierBalanceQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierBalanceQuery{}, err
	}
	return GetCourierBalanceQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierBalanceQueryIsNotConstructed if validation fails.
func (q GetCourierBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierBalanceQueryIsNotConstructed)
}

// CourierID returns the courier whose balance is requested.
func (q GetCourierBalanceQuery) CourierID() kernel.UUID { return q.courierID }

// GetCourierBalanceQueryResponse is the courier earnings read model.
// PendingPayouts is the sum of payout requests not yet completed or
// rejected, so the courier can see what of their balance is spoken for.
type GetCourierBalanceQueryResponse struct {
	CourierID       kernel.UUID
	Balance         int64
	TotalDeliveries int64
	TotalEarned     int64
	PendingPayouts  int64
}
