package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was
// not created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an operator's request to register a new
// delivery order. The price is fixed while handling this command and never
// recomputed afterwards; an optional manual total overrides the calculated
// fare while keeping the commission/payout split rule.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sender        kernel.Contact
	receiver      kernel.Contact
	vehicleClass  kernel.VehicleClass
	isNightWindow bool
	manualTotal   *int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order creation command.
// manualTotal is nil for calculated pricing.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sender kernel.Contact,
	receiver kernel.Contact,
	vehicleClass kernel.VehicleClass,
	isNightWindow bool,
	manualTotal *int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		isNightWindow: isNightWindow,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setParties(sender, receiver),
		cmd.setVehicleClass(vehicleClass),
		cmd.setManualTotal(manualTotal),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the order to create.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Sender returns the sending party.
func (c CreateOrderCommand) Sender() kernel.Contact { return c.sender }

// Receiver returns the receiving party.
func (c CreateOrderCommand) Receiver() kernel.Contact { return c.receiver }

// VehicleClass returns the requested transport class.
func (c CreateOrderCommand) VehicleClass() kernel.VehicleClass { return c.vehicleClass }

// IsNightWindow reports whether the night tariff multiplier applies.
func (c CreateOrderCommand) IsNightWindow() bool { return c.isNightWindow }

// ManualTotal returns the operator-supplied final price, nil for
// calculated pricing.
func (c CreateOrderCommand) ManualTotal() *int64 { return c.manualTotal }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setParties(sender, receiver kernel.Contact) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	if err := receiver.Validate(); err != nil {
		return err
	}
	c.sender = sender
	c.receiver = receiver
	return nil
}

func (c *CreateOrderCommand) setVehicleClass(vehicleClass kernel.VehicleClass) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}
	c.vehicleClass = vehicleClass
	return nil
}

func (c *CreateOrderCommand) setManualTotal(manualTotal *int64) error {
	if manualTotal != nil && *manualTotal <= 0 {
		return errors.New("manual total must be greater than 0")
	}
	c.manualTotal = manualTotal
	return nil
}
