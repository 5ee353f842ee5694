package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrResolvePayoutCommandIsNotConstructed is returned when the command was
// not created via NewResolvePayoutCommand.
var ErrResolvePayoutCommandIsNotConstructed = errors.New(
	"ResolvePayoutCommand must be created via NewResolvePayoutCommand constructor",
)

// ResolvePayoutCommand approves or rejects a pending payout request.
type ResolvePayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID kernel.UUID
	approve  bool

	guard guard.ConstructorGuard
}

// NewResolvePayoutCommand creates a validated resolution command.
func NewResolvePayoutCommand(payoutID kernel.UUID, approve bool) (ResolvePayoutCommand, error) {
	if err := payoutID.Validate(); err != nil {
		return ResolvePayoutCommand{}, err
	}

	return ResolvePayoutCommand{
		payoutID: payoutID,
		approve:  approve,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolvePayoutCommand) Validate() error {
	return c.guard.Validate(ErrResolvePayoutCommandIsNotConstructed)
}

// PayoutID returns the payout request identifier.
func (c ResolvePayoutCommand) PayoutID() kernel.UUID { return c.payoutID }

// Approve reports whether the request should be approved rather than rejected.
func (c ResolvePayoutCommand) Approve() bool { return c.approve }
