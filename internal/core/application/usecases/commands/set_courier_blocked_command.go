package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrSetCourierBlockedCommandIsNotConstructed is returned when the command
// was not created via NewSetCourierBlockedCommand.
var ErrSetCourierBlockedCommandIsNotConstructed = errors.New(
	"SetCourierBlockedCommand must be created via NewSetCourierBlockedCommand constructor",
)

// SetCourierBlockedCommand blocks or unblocks a courier. Blocked couriers
// cannot claim orders; deliveries already in flight are unaffected.
type SetCourierBlockedCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	blocked   bool

	guard guard.ConstructorGuard
}

// NewSetCourierBlockedCommand creates a validated block/unblock command.
func NewSetCourierBlockedCommand(courierID kernel.UUID, blocked bool) (SetCourierBlockedCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierBlockedCommand{}, err
	}

	return SetCourierBlockedCommand{
		courierID: courierID,
		blocked:   blocked,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierBlockedCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierBlockedCommandIsNotConstructed)
}

// CourierID returns the courier to block or unblock.
func (c SetCourierBlockedCommand) CourierID() kernel.UUID { return c.courierID }

// Blocked returns the desired blocked flag.
func (c SetCourierBlockedCommand) Blocked() bool { return c.blocked }
