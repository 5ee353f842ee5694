package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrPriceIsNotConstructed indicates a zero-value Price that was not
// created through NewPrice.
var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError("Price must be created via NewPrice")

// Price is the immutable monetary snapshot fixed when the order is created.
// Totals are whole currency units; the pre-VAT amount and VAT keep their
// fractional parts for the breakdown shown to operators.
//
// Invariant: Commission + Payout == Total and Payout >= 0 always. Payout is
// computed by subtraction at construction time, never independently, so the
// invariant cannot drift through rounding.
type Price struct {
	base       int64
	perKmRate  float64
	billableKm float64
	preVat     float64
	vat        float64
	total      int64
	commission int64
	payout     int64

	isConstructed bool
}

// NewPrice creates a validated Price snapshot. Payout is derived as
// total - commission; callers supply only the collected side of the split.
func NewPrice(base int64, perKmRate, billableKm, preVat, vat float64, total, commission int64) (Price, error) {
	if total < 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d is negative", total))
	}
	if commission < 0 || commission > total {
		return Price{}, errs.NewValueIsOutOfRangeError("commission", commission, 0, total)
	}
	if billableKm < 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("billableKm",
			fmt.Errorf("%f is negative", billableKm))
	}

	return Price{
		base:          base,
		perKmRate:     perKmRate,
		billableKm:    billableKm,
		preVat:        preVat,
		vat:           vat,
		total:         total,
		commission:    commission,
		payout:        total - commission,
		isConstructed: true,
	}, nil
}

// Validate reports whether the Price was created via NewPrice and still
// holds the commission + payout == total invariant.
func (p Price) Validate() error {
	if !p.isConstructed {
		return ErrPriceIsNotConstructed
	}
	if p.commission+p.payout != p.total {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("commission %d + payout %d != total %d", p.commission, p.payout, p.total))
	}
	if p.payout < 0 {
		return errs.NewValueIsInvalidErrorWithCause("payout",
			fmt.Errorf("%d is negative", p.payout))
	}
	return nil
}

// Base returns the flag-fall part of the fare.
func (p Price) Base() int64 { return p.base }

// PerKmRate returns the applied distance rate.
func (p Price) PerKmRate() float64 { return p.perKmRate }

// BillableKm returns the distance actually charged (trip minus free allowance).
func (p Price) BillableKm() float64 { return p.billableKm }

// PreVat returns the fare before VAT.
func (p Price) PreVat() float64 { return p.preVat }

// Vat returns the VAT amount.
func (p Price) Vat() float64 { return p.vat }

// Total returns the amount collected from the customer.
func (p Price) Total() int64 { return p.total }

// Commission returns the company's share of the total.
func (p Price) Commission() int64 { return p.commission }

// Payout returns the courier's share of the total.
func (p Price) Payout() int64 { return p.payout }
