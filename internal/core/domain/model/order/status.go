package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for every illegal status move.
// Callers match it with errors.Is to distinguish a logic error from a lost
// race (which surfaces separately, at the persistence layer).
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──publish──> Published ──claim──> Assigned ──pickup──> PickedUp ──deliver──> Delivered
//	 │                  │                    │                    │
//	 └──────────────────┴────────cancel──────┴────────────────────┘──> Cancelled
//
// Delivered and Cancelled are terminal. Published orders are also cancelled
// by the expiry sweeper. Every legal move is listed in the transitions
// table; nothing else is ever allowed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status: the order exists but is not yet visible
	// to the courier pool.
	New

	// Published means the order is broadcast and eligible to be claimed.
	Published

	// Assigned means exactly one courier has claimed the order.
	Assigned

	// PickedUp means the assigned courier has collected the package.
	PickedUp

	// Delivered is the terminal success status.
	Delivered

	// Cancelled is the terminal failure status, reached by operator or
	// system cancellation.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		New:       "New",
		Published: "Published",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// transitions is the single source of truth for the state machine.
// Cancellation legality is handled by CanCancel, not listed per row twice.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		New:       {Published, Cancelled},
		Published: {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// Validate checks the Status value is one of the defined states.
func (s Status) Validate() error {
	if s == Unknown {
		return fmt.Errorf("%w: status is unknown", ErrInvalidTransition)
	}
	if _, ok := transitions()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, int(s))
	}
	return nil
}

// String implements fmt.Stringer. Safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the move s -> target is listed in the
// transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the move, returning the new status.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
