package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrRequestPayoutCommandIsNotConstructed is returned when the command was
// not created via NewRequestPayoutCommand.
var ErrRequestPayoutCommandIsNotConstructed = errors.New(
	"RequestPayoutCommand must be created via NewRequestPayoutCommand constructor",
)

// RequestPayoutCommand files a courier's withdrawal request. The balance
// is only checked when the payout completes; a pending request does not
// reserve funds.
type RequestPayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID  kernel.UUID
	courierID kernel.UUID
	amount    int64

	guard guard.ConstructorGuard
}

// NewRequestPayoutCommand creates a validated payout request command.
func NewRequestPayoutCommand(payoutID, courierID kernel.UUID, amount int64) (RequestPayoutCommand, error) {
	if err := errors.Join(payoutID.Validate(), courierID.Validate()); err != nil {
		return RequestPayoutCommand{}, err
	}
	if amount <= 0 {
		return RequestPayoutCommand{}, fmt.Errorf("payout amount must be greater than 0, got %d", amount)
	}

	return RequestPayoutCommand{
		payoutID:  payoutID,
		courierID: courierID,
		amount:    amount,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestPayoutCommand) Validate() error {
	return c.guard.Validate(ErrRequestPayoutCommandIsNotConstructed)
}

// PayoutID returns the identifier for the payout request to create.
func (c RequestPayoutCommand) PayoutID() kernel.UUID { return c.payoutID }

// CourierID returns the requesting courier.
func (c RequestPayoutCommand) CourierID() kernel.UUID { return c.courierID }

// Amount returns the requested withdrawal amount.
func (c RequestPayoutCommand) Amount() int64 { return c.amount }
