package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed is returned when the command was
// not created via NewCancelOrderCommand.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels a non-terminal order. Operators cancel on
// customer request; the system cancels through the expiry sweeper.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorType order.ActorType
	actorID   *kernel.UUID
	note      string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a validated cancel command. actorID is nil
// for system cancellations.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	actorType order.ActorType,
	actorID *kernel.UUID,
	note string,
) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actorType.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return CancelOrderCommand{}, err
		}
	}

	return CancelOrderCommand{
		orderID:   orderID,
		actorType: actorType,
		actorID:   actorID,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorType returns who requested the cancellation.
func (c CancelOrderCommand) ActorType() order.ActorType { return c.actorType }

// ActorID returns the acting operator, nil for system cancellations.
func (c CancelOrderCommand) ActorID() *kernel.UUID { return c.actorID }

// Note returns the optional cancellation reason.
func (c CancelOrderCommand) Note() string { return c.note }
