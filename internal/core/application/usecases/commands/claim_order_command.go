package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrClaimOrderCommandIsNotConstructed is returned when the command was
// not created via NewClaimOrderCommand.
var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is a courier's attempt to become the exclusive
// assignee of a specific published order.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a validated claim command.
func NewClaimOrderCommand(orderID, courierID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the claiming courier.
func (c ClaimOrderCommand) CourierID() kernel.UUID { return c.courierID }
