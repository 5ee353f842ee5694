package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyCancelled marks a cancel on an order that is already in
	// Cancelled status. Callers treat it as a successful no-op; it exists
	// so the handler can skip the history entry and the event.
	ErrAlreadyCancelled = errors.New("order is already cancelled")
)

// Order is the aggregate root of a same-city delivery. It moves through
// the lifecycle defined in status.go and carries the price snapshot fixed
// at creation.
//
// Invariants:
//   - the price is never recomputed after construction
//   - each lifecycle timestamp is set exactly once, when its status is reached
//   - the courier reference is set exactly once, on assignment
//   - terminal orders (Delivered, Cancelled) never change again
//
// The in-memory transition methods validate legality; the concurrency guard
// against two writers moving the same order lives in the repository's
// conditional update, not here.
type Order struct {
	id           kernel.UUID
	number       int64
	sender       kernel.Contact
	receiver     kernel.Contact
	vehicleClass kernel.VehicleClass
	distanceKm   float64
	price        Price
	courierID    *kernel.UUID
	status       Status

	createdAt   time.Time
	publishedAt *time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	isConstructed bool
}

// NewOrder creates an order in New status. The number is the human-facing
// sequential identifier already drawn from the store's sequence, so two
// concurrent creators can never collide on it.
func NewOrder(
	id kernel.UUID,
	number int64,
	sender kernel.Contact,
	receiver kernel.Contact,
	vehicleClass kernel.VehicleClass,
	distanceKm float64,
	price Price,
) (*Order, error) {
	o := &Order{
		status:        New,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(sender, receiver),
		o.setVehicleClass(vehicleClass),
		o.setDistanceKm(distanceKm),
		o.setPrice(price),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without touching the
// lifecycle rules. The repository is trusted to pass a consistent snapshot.
func RestoreOrder(
	id kernel.UUID,
	number int64,
	sender kernel.Contact,
	receiver kernel.Contact,
	vehicleClass kernel.VehicleClass,
	distanceKm float64,
	price Price,
	courierID *kernel.UUID,
	status Status,
	createdAt time.Time,
	publishedAt, assignedAt, pickedUpAt, deliveredAt, cancelledAt *time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		assignedAt:    assignedAt,
		pickedUpAt:    pickedUpAt,
		deliveredAt:   deliveredAt,
		cancelledAt:   cancelledAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(sender, receiver),
		o.setVehicleClass(vehicleClass),
		o.setDistanceKm(distanceKm),
		o.setPrice(price),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		o.courierID = courierID
	}

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return o.price.Validate()
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-facing sequential order number.
func (o *Order) Number() int64 { return o.number }

// Sender returns the party handing the package over.
func (o *Order) Sender() kernel.Contact { return o.sender }

// Receiver returns the party taking the package.
func (o *Order) Receiver() kernel.Contact { return o.receiver }

// VehicleClass returns the transport class the order requires.
func (o *Order) VehicleClass() kernel.VehicleClass { return o.vehicleClass }

// DistanceKm returns the trip distance supplied by the estimator at
// creation time. It is never re-queried afterwards.
func (o *Order) DistanceKm() float64 { return o.distanceKm }

// Price returns the immutable price snapshot.
func (o *Order) Price() Price { return o.price }

// Courier returns the assigned courier's ID, nil until assignment.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// PublishedAt returns when the order became claimable, nil before that.
func (o *Order) PublishedAt() *time.Time { return o.publishedAt }

// AssignedAt returns when the order was claimed, nil before that.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// PickedUpAt returns when the package was collected, nil before that.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns when the package was dropped off, nil before that.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, nil before that.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Publish makes the order visible to the courier pool.
func (o *Order) Publish() error {
	newStatus, err := o.status.TransitionTo(Published)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.publishedAt = &now
	return nil
}

// Assign records the winning courier of a claim. The exactly-one-winner
// guarantee comes from the repository's conditional update; this method
// only enforces the state machine and the single-assignment rule.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return fmt.Errorf("%w: order %s is already assigned", ErrInvalidTransition, o.id)
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.courierID = &courierID
	o.assignedAt = &now
	return nil
}

// Pickup records the package collection by the assigned courier.
func (o *Order) Pickup() error {
	newStatus, err := o.status.TransitionTo(PickedUp)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.pickedUpAt = &now
	return nil
}

// Deliver records the drop-off. The corresponding ledger credit happens in
// the same transaction, coordinated by the deliver command handler.
func (o *Order) Deliver() error {
	newStatus, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// Cancel moves the order to Cancelled from any non-terminal status.
// Cancelling an already-cancelled order returns ErrAlreadyCancelled, which
// callers surface as a successful no-op; cancelling a delivered order is an
// ErrInvalidTransition.
func (o *Order) Cancel() error {
	if o.status == Cancelled {
		return ErrAlreadyCancelled
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.cancelledAt = &now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number int64) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	o.number = number
	return nil
}

func (o *Order) setParties(sender, receiver kernel.Contact) error {
	if err := sender.Validate(); err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	if err := receiver.Validate(); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	o.sender = sender
	o.receiver = receiver
	return nil
}

func (o *Order) setVehicleClass(vehicleClass kernel.VehicleClass) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}
	o.vehicleClass = vehicleClass
	return nil
}

func (o *Order) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setPrice(price Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.price = price
	return nil
}
