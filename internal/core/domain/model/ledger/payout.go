package ledger

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrPayoutIsNotConstructed is returned when a PayoutRequest was not
	// created through NewPayoutRequest or RestorePayoutRequest.
	ErrPayoutIsNotConstructed = errors.New("PayoutRequest must be created via NewPayoutRequest or RestorePayoutRequest")

	// ErrInvalidPayoutTransition marks an illegal payout status move.
	ErrInvalidPayoutTransition = errors.New("invalid payout status transition")
)

// PayoutStatus is the two-phase admin workflow for withdrawals. The actual
// balance debit happens only at completion, guarded by the balance check.
type PayoutStatus int

const (
	// PayoutUnknown represents an invalid or undefined status.
	PayoutUnknown PayoutStatus = iota

	// PayoutPending means the courier has requested a withdrawal.
	PayoutPending

	// PayoutApproved means an operator has accepted the request.
	PayoutApproved

	// PayoutCompleted means the money left the balance. Terminal.
	PayoutCompleted

	// PayoutRejected means an operator declined the request. Terminal.
	PayoutRejected
)

func payoutStatusStrings() map[PayoutStatus]string {
	return map[PayoutStatus]string{
		PayoutPending:   "pending",
		PayoutApproved:  "approved",
		PayoutCompleted: "completed",
		PayoutRejected:  "rejected",
	}
}

// Validate checks the value is one of the defined statuses.
func (s PayoutStatus) Validate() error {
	if _, ok := payoutStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payoutStatus",
			fmt.Errorf("%d is not a valid payout status", int(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s PayoutStatus) String() string {
	if str, ok := payoutStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PayoutRequest is the aggregate for a courier withdrawal. It only tracks
// the approval workflow; the money itself moves through a ledger debit in
// the completion transaction.
type PayoutRequest struct {
	id          kernel.UUID
	courierID   kernel.UUID
	amount      int64
	status      PayoutStatus
	requestedAt time.Time
	resolvedAt  *time.Time

	isConstructed bool
}

// NewPayoutRequest creates a pending withdrawal request. The amount is
// checked against the balance only at completion time; a request may sit
// pending while deliveries keep accruing.
func NewPayoutRequest(id, courierID kernel.UUID, amount int64) (*PayoutRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return &PayoutRequest{
		id:            id,
		courierID:     courierID,
		amount:        amount,
		status:        PayoutPending,
		requestedAt:   time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestorePayoutRequest reconstructs a request from persistence.
func RestorePayoutRequest(
	id, courierID kernel.UUID,
	amount int64,
	status PayoutStatus,
	requestedAt time.Time,
	resolvedAt *time.Time,
) (*PayoutRequest, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &PayoutRequest{
		id:            id,
		courierID:     courierID,
		amount:        amount,
		status:        status,
		requestedAt:   requestedAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the request was built through a constructor.
func (p *PayoutRequest) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPayoutIsNotConstructed
	}
	return nil
}

// ID returns the request identifier.
func (p *PayoutRequest) ID() kernel.UUID { return p.id }

// CourierID returns the requesting courier.
func (p *PayoutRequest) CourierID() kernel.UUID { return p.courierID }

// Amount returns the requested withdrawal amount.
func (p *PayoutRequest) Amount() int64 { return p.amount }

// Status returns the workflow status.
func (p *PayoutRequest) Status() PayoutStatus { return p.status }

// RequestedAt returns when the courier filed the request.
func (p *PayoutRequest) RequestedAt() time.Time { return p.requestedAt }

// ResolvedAt returns when the request reached a terminal status, nil before.
func (p *PayoutRequest) ResolvedAt() *time.Time { return p.resolvedAt }

// Approve moves pending -> approved.
func (p *PayoutRequest) Approve() error {
	if p.status != PayoutPending {
		return fmt.Errorf("%w: %s -> approved", ErrInvalidPayoutTransition, p.status)
	}
	p.status = PayoutApproved
	return nil
}

// Complete moves approved -> completed. The caller debits the balance in
// the same transaction.
func (p *PayoutRequest) Complete() error {
	if p.status != PayoutApproved {
		return fmt.Errorf("%w: %s -> completed", ErrInvalidPayoutTransition, p.status)
	}
	now := time.Now().UTC()
	p.status = PayoutCompleted
	p.resolvedAt = &now
	return nil
}

// Reject moves pending -> rejected.
func (p *PayoutRequest) Reject() error {
	if p.status != PayoutPending {
		return fmt.Errorf("%w: %s -> rejected", ErrInvalidPayoutTransition, p.status)
	}
	now := time.Now().UTC()
	p.status = PayoutRejected
	p.resolvedAt = &now
	return nil
}
