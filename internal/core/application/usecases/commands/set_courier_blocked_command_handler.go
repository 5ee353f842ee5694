package commands

import (
	"context"
)

// SetCourierBlockedCommandHandler flips the courier's blocked flag.
type SetCourierBlockedCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierBlockedCommandHandler creates a handler for the blocked flag.
func NewSetCourierBlockedCommandHandler(uowFactory CourierUoWFactory) SetCourierBlockedCommandHandler {
	return SetCourierBlockedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the blocked flag. The claim coordinator re-reads the flag
// inside its own transaction, so a block takes effect for every claim that
// commits after this one.
func (h SetCourierBlockedCommandHandler) Handle(ctx context.Context, cmd SetCourierBlockedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if cmd.Blocked() {
		aggregate.Block()
	} else {
		aggregate.Unblock()
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
