package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrClaimNextOrderCommandIsNotConstructed is returned when the command
// was not created via NewClaimNextOrderCommand.
var ErrClaimNextOrderCommandIsNotConstructed = errors.New(
	"ClaimNextOrderCommand must be created via NewClaimNextOrderCommand constructor",
)

// ClaimNextOrderCommand is the take-any-available claim: "I'll take the
// next one". The handler picks candidates itself.
type ClaimNextOrderCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimNextOrderCommand creates a validated take-any claim command.
func NewClaimNextOrderCommand(courierID kernel.UUID) (ClaimNextOrderCommand, error) {
	if err := courierID.Validate(); err != nil {
		return ClaimNextOrderCommand{}, err
	}

	return ClaimNextOrderCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimNextOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimNextOrderCommandIsNotConstructed)
}

// CourierID returns the claiming courier.
func (c ClaimNextOrderCommand) CourierID() kernel.UUID { return c.courierID }
