package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCreateCourierCommandIsNotConstructed is returned when the command was
// not created via NewCreateCourierCommand.
var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers an approved courier with the pool.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	name         string
	phone        string
	vehicleClass kernel.VehicleClass

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a validated courier registration command.
func NewCreateCourierCommand(
	courierID kernel.UUID,
	name, phone string,
	vehicleClass kernel.VehicleClass,
) (CreateCourierCommand, error) {
	if err := errors.Join(courierID.Validate(), vehicleClass.Validate()); err != nil {
		return CreateCourierCommand{}, err
	}
	if name == "" {
		return CreateCourierCommand{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return CreateCourierCommand{}, errs.NewValueIsRequiredError("phone")
	}

	return CreateCourierCommand{
		courierID:    courierID,
		name:         name,
		phone:        phone,
		vehicleClass: vehicleClass,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the identifier for the courier to create.
func (c CreateCourierCommand) CourierID() kernel.UUID { return c.courierID }

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string { return c.name }

// Phone returns the courier's phone number.
func (c CreateCourierCommand) Phone() string { return c.phone }

// VehicleClass returns the courier's transport class.
func (c CreateCourierCommand) VehicleClass() kernel.VehicleClass { return c.vehicleClass }
