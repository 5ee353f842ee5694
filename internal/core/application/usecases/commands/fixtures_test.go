package commands_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) *order.Order {
	t.Helper()

	sender, err := kernel.NewContact("Sender", "+15550001111", "12 Main St")
	require.NoError(t, err)
	receiver, err := kernel.NewContact("Receiver", "+15550002222", "34 Side St")
	require.NoError(t, err)
	price, err := order.NewPrice(70, 3, 12, 106, 19.08, 126, 31)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), 1, sender, receiver, kernel.VehicleMotorcycle, 12, price)
	require.NoError(t, err)
	return o
}

func publishedOrderFixture(t *testing.T) *order.Order {
	t.Helper()

	o := newOrderFixture(t)
	require.NoError(t, o.Publish())
	return o
}

func pickedUpOrderFixture(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()

	o := publishedOrderFixture(t)
	require.NoError(t, o.Assign(courierID))
	require.NoError(t, o.Pickup())
	return o
}

func courierFixture(t *testing.T, id kernel.UUID) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(id, "John Doe", "+15550003333", kernel.VehicleMotorcycle)
	require.NoError(t, err)
	return c
}

func approvedPayoutFixture(t *testing.T, payoutID, courierID kernel.UUID, amount int64) *ledger.PayoutRequest {
	t.Helper()

	request, err := ledger.NewPayoutRequest(payoutID, courierID, amount)
	require.NoError(t, err)
	require.NoError(t, request.Approve())
	return request
}
