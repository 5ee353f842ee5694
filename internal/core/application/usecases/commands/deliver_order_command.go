package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrDeliverOrderCommandIsNotConstructed is returned when the command was
// not created via NewDeliverOrderCommand.
var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand records the drop-off and triggers the courier's
// payout credit.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a validated deliver command.
func NewDeliverOrderCommand(orderID, courierID kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c DeliverOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the courier reporting the delivery.
func (c DeliverOrderCommand) CourierID() kernel.UUID { return c.courierID }
