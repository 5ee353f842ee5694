// Package courier contains the courier aggregate: identity, blocking
// policy and the money counters kept in sync with the earnings ledger.
package courier

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was
	// not created through NewCourier or RestoreCourier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

	// ErrCourierBlocked is the policy rejection for blocked couriers
	// attempting to claim orders or request payouts.
	ErrCourierBlocked = errors.New("courier is blocked")

	// ErrInsufficientBalance is returned when a debit would take the
	// balance below zero. The database enforces the same rule with a
	// conditional update; this sentinel is what both layers surface.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Courier is the aggregate for a delivery rider. The balance is the
// owed-but-unpaid earnings and is only ever mutated through the ledger
// operations (credit on delivery, debit on payout): totalEarned is the
// lifetime counter and never decreases, while balance drops on payouts.
//
// Invariant: balance >= 0 at all times.
type Courier struct {
	id              kernel.UUID
	name            string
	phone           string
	vehicleClass    kernel.VehicleClass
	blocked         bool
	balance         int64
	totalDeliveries int64
	totalEarned     int64

	isConstructed bool
}

// NewCourier registers a courier with zero counters and an unblocked flag.
func NewCourier(id kernel.UUID, name, phone string, vehicleClass kernel.VehicleClass) (*Courier, error) {
	c := &Courier{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setVehicleClass(vehicleClass),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(
	id kernel.UUID,
	name, phone string,
	vehicleClass kernel.VehicleClass,
	blocked bool,
	balance, totalDeliveries, totalEarned int64,
) (*Courier, error) {
	c := &Courier{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setVehicleClass(vehicleClass),
	); err != nil {
		return nil, err
	}

	if balance < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%d is negative", balance))
	}
	if totalEarned < balance {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalEarned",
			fmt.Errorf("%d is less than balance %d", totalEarned, balance))
	}

	c.blocked = blocked
	c.balance = balance
	c.totalDeliveries = totalDeliveries
	c.totalEarned = totalEarned
	return c, nil
}

// Validate ensures the Courier was built through a constructor.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's phone number.
func (c *Courier) Phone() string { return c.phone }

// VehicleClass returns the courier's transport class.
func (c *Courier) VehicleClass() kernel.VehicleClass { return c.vehicleClass }

// IsBlocked reports whether the courier is barred from claiming orders.
func (c *Courier) IsBlocked() bool { return c.blocked }

// Balance returns the owed-but-unpaid earnings.
func (c *Courier) Balance() int64 { return c.balance }

// TotalDeliveries returns the lifetime completed delivery count.
func (c *Courier) TotalDeliveries() int64 { return c.totalDeliveries }

// TotalEarned returns the lifetime earnings, monotonically non-decreasing.
func (c *Courier) TotalEarned() int64 { return c.totalEarned }

// Block bars the courier from claiming new orders. Orders already in
// flight are not touched.
func (c *Courier) Block() {
	c.blocked = true
}

// Unblock lifts the bar.
func (c *Courier) Unblock() {
	c.blocked = false
}

// EnsureCanClaim is the policy precondition checked before a claim attempt.
// It is re-validated inside the claim transaction to close the
// check-then-act window.
func (c *Courier) EnsureCanClaim() error {
	if c.blocked {
		return ErrCourierBlocked
	}
	return nil
}

// CreditDelivery applies a delivery payout to the in-memory counters.
// The persistent counterpart is a single atomic increment performed by the
// repository in the deliver transaction.
func (c *Courier) CreditDelivery(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}

	c.balance += amount
	c.totalEarned += amount
	c.totalDeliveries++
	return nil
}

// Debit applies a payout withdrawal to the in-memory counters. Fails with
// ErrInsufficientBalance rather than letting the balance go negative.
func (c *Courier) Debit(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	if amount > c.balance {
		return fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientBalance, c.balance, amount)
	}

	c.balance -= amount
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Courier) setVehicleClass(vehicleClass kernel.VehicleClass) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}
	c.vehicleClass = vehicleClass
	return nil
}
