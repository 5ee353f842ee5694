package commands

import "errors"

var (
	// ErrOrderAlreadyTaken is the definitive "someone else won" outcome of
	// a claim race. It is an expected result, not a fault: callers inform
	// the courier and move on, and nothing logs it as an error.
	ErrOrderAlreadyTaken = errors.New("order already taken")

	// ErrNoClaimableOrders is returned by the take-any-available claim
	// when no published order is left for the courier's vehicle class.
	ErrNoClaimableOrders = errors.New("no claimable orders")

	// ErrNotOrderAssignee rejects pickup/deliver calls from a courier the
	// order is not assigned to.
	ErrNotOrderAssignee = errors.New("courier is not the order assignee")

	// ErrBalanceMismatch is the reconciliation integrity alert: the
	// materialized balance disagrees with the sum of ledger entries.
	// It is reported, never auto-corrected.
	ErrBalanceMismatch = errors.New("courier balance does not match ledger sum")
)
