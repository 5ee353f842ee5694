package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrPublishOrderCommandIsNotConstructed is returned when the command was
// not created via NewPublishOrderCommand.
var ErrPublishOrderCommandIsNotConstructed = errors.New(
	"PublishOrderCommand must be created via NewPublishOrderCommand constructor",
)

// PublishOrderCommand broadcasts a new order to the courier pool.
type PublishOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPublishOrderCommand creates a validated publish command.
func NewPublishOrderCommand(orderID kernel.UUID) (PublishOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PublishOrderCommand{}, err
	}

	return PublishOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOrderCommand) Validate() error {
	return c.guard.Validate(ErrPublishOrderCommandIsNotConstructed)
}

// OrderID returns the order to publish.
func (c PublishOrderCommand) OrderID() kernel.UUID { return c.orderID }
