package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCompletePayoutCommandIsNotConstructed is returned when the command was
// not created via NewCompletePayoutCommand.
var ErrCompletePayoutCommandIsNotConstructed = errors.New(
	"CompletePayoutCommand must be created via NewCompletePayoutCommand constructor",
)

// CompletePayoutCommand finishes an approved payout: the courier's balance
// is debited and a matching ledger entry is written.
type CompletePayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePayoutCommand creates a validated completion command.
func NewCompletePayoutCommand(payoutID kernel.UUID) (CompletePayoutCommand, error) {
	if err := payoutID.Validate(); err != nil {
		return CompletePayoutCommand{}, err
	}

	return CompletePayoutCommand{
		payoutID: payoutID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePayoutCommand) Validate() error {
	return c.guard.Validate(ErrCompletePayoutCommandIsNotConstructed)
}

// PayoutID returns the payout request identifier.
func (c CompletePayoutCommand) PayoutID() kernel.UUID { return c.payoutID }
