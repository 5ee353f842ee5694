package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAdjustBalanceCommandIsNotConstructed is returned when the command was
// not created via NewAdjustBalanceCommand.
var ErrAdjustBalanceCommandIsNotConstructed = errors.New(
	"AdjustBalanceCommand must be created via NewAdjustBalanceCommand constructor",
)

// AdjustBalanceCommand applies an operator correction to a courier's balance.
// The amount is signed: positive adds funds, negative removes them.
type AdjustBalanceCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	amount    int64
	note      string

	guard guard.ConstructorGuard
}

// NewAdjustBalanceCommand creates a validated adjustment command. A note
// explaining the correction is mandatory.
func NewAdjustBalanceCommand(courierID kernel.UUID, amount int64, note string) (AdjustBalanceCommand, error) {
	if err := courierID.Validate(); err != nil {
		return AdjustBalanceCommand{}, err
	}
	if amount == 0 {
		return AdjustBalanceCommand{}, fmt.Errorf("adjustment amount must not be 0")
	}
	if note == "" {
		return AdjustBalanceCommand{}, errors.New("adjustment note must not be empty")
	}

	return AdjustBalanceCommand{
		courierID: courierID,
		amount:    amount,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustBalanceCommand) Validate() error {
	return c.guard.Validate(ErrAdjustBalanceCommandIsNotConstructed)
}

// CourierID returns the courier to adjust.
func (c AdjustBalanceCommand) CourierID() kernel.UUID { return c.courierID }

// Amount returns the signed adjustment amount.
func (c AdjustBalanceCommand) Amount() int64 { return c.amount }

// Note returns the operator's explanation for the correction.
func (c AdjustBalanceCommand) Note() string { return c.note }
