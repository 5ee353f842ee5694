package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrPickupOrderCommandIsNotConstructed is returned when the command was
// not created via NewPickupOrderCommand.
var ErrPickupOrderCommandIsNotConstructed = errors.New(
	"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
)

// PickupOrderCommand records that the assigned courier collected the
// package from the sender.
type PickupOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickupOrderCommand creates a validated pickup command.
func NewPickupOrderCommand(orderID, courierID kernel.UUID) (PickupOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return PickupOrderCommand{}, err
	}

	return PickupOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickupOrderCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c PickupOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the courier reporting the pickup.
func (c PickupOrderCommand) CourierID() kernel.UUID { return c.courierID }
