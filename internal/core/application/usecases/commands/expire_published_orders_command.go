package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/guard"
)

// ErrExpirePublishedOrdersCommandIsNotConstructed is returned when the
// command was not created via NewExpirePublishedOrdersCommand.
var ErrExpirePublishedOrdersCommandIsNotConstructed = errors.New(
	"ExpirePublishedOrdersCommand must be created via NewExpirePublishedOrdersCommand constructor",
)

// ExpirePublishedOrdersCommand asks the sweeper to auto-cancel every order
// that sat published longer than the threshold.
type ExpirePublishedOrdersCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePublishedOrdersCommand creates a validated sweep command.
func NewExpirePublishedOrdersCommand(threshold time.Duration) (ExpirePublishedOrdersCommand, error) {
	if threshold <= 0 {
		return ExpirePublishedOrdersCommand{}, fmt.Errorf("threshold must be positive, got %s", threshold)
	}

	return ExpirePublishedOrdersCommand{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePublishedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePublishedOrdersCommandIsNotConstructed)
}

// Threshold returns how long an order may sit published before expiry.
func (c ExpirePublishedOrdersCommand) Threshold() time.Duration { return c.threshold }
