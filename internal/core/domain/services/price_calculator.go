// Package services contains stateless domain services that work across
// aggregates. The price calculator is a pure function of the tariff and the
// trip parameters: no clock, no I/O, identical inputs always produce an
// identical breakdown.
package services

import (
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Tariff is the pricing configuration: a flag-fall base, a per-km rate with
// a free allowance, per-vehicle-class rate multipliers, a night multiplier
// applied before VAT, and the VAT and commission rates.
type Tariff struct {
	base            int64
	perKmRate       float64
	freeKm          float64
	vatRate         float64
	commissionRate  float64
	nightMultiplier float64
	classMultiplier map[kernel.VehicleClass]float64

	isConstructed bool
}

// ErrTariffIsNotConstructed indicates a zero-value Tariff.
var ErrTariffIsNotConstructed = errs.NewValueIsRequiredError("Tariff must be created via NewTariff")

// NewTariff creates a validated Tariff. classMultiplier may omit classes;
// omitted classes price at the plain per-km rate.
func NewTariff(
	base int64,
	perKmRate, freeKm, vatRate, commissionRate, nightMultiplier float64,
	classMultiplier map[kernel.VehicleClass]float64,
) (Tariff, error) {
	if base < 0 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("base",
			fmt.Errorf("%d is negative", base))
	}
	if perKmRate < 0 || freeKm < 0 {
		return Tariff{}, errs.NewValueIsInvalidError("perKmRate/freeKm")
	}
	if vatRate < 0 || vatRate >= 1 {
		return Tariff{}, errs.NewValueIsOutOfRangeError("vatRate", vatRate, 0, 1)
	}
	if commissionRate < 0 || commissionRate >= 1 {
		return Tariff{}, errs.NewValueIsOutOfRangeError("commissionRate", commissionRate, 0, 1)
	}
	if nightMultiplier < 1 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("nightMultiplier",
			fmt.Errorf("%f is less than 1", nightMultiplier))
	}

	multipliers := make(map[kernel.VehicleClass]float64, len(classMultiplier))
	for class, m := range classMultiplier {
		if err := class.Validate(); err != nil {
			return Tariff{}, err
		}
		if m <= 0 {
			return Tariff{}, errs.NewValueIsInvalidErrorWithCause("classMultiplier",
				fmt.Errorf("%f is not greater than 0", m))
		}
		multipliers[class] = m
	}

	return Tariff{
		base:            base,
		perKmRate:       perKmRate,
		freeKm:          freeKm,
		vatRate:         vatRate,
		commissionRate:  commissionRate,
		nightMultiplier: nightMultiplier,
		classMultiplier: multipliers,
		isConstructed:   true,
	}, nil
}

// Validate reports whether the Tariff was created via NewTariff.
func (t Tariff) Validate() error {
	if !t.isConstructed {
		return ErrTariffIsNotConstructed
	}
	return nil
}

func (t Tariff) rateFor(class kernel.VehicleClass) float64 {
	if m, ok := t.classMultiplier[class]; ok {
		return t.perKmRate * m
	}
	return t.perKmRate
}

// PriceCalculator produces the immutable price snapshot an order carries.
type PriceCalculator struct {
	tariff Tariff
}

// NewPriceCalculator creates a calculator over a validated tariff.
func NewPriceCalculator(tariff Tariff) (PriceCalculator, error) {
	if err := tariff.Validate(); err != nil {
		return PriceCalculator{}, err
	}
	return PriceCalculator{tariff: tariff}, nil
}

// Quote computes the price breakdown for a trip.
//
// The total is rounded up to the next whole currency unit so the company
// never under-collects; the commission is rounded down and the payout is
// derived by subtraction inside order.NewPrice, which is what keeps
// commission + payout == total exact.
func (c PriceCalculator) Quote(
	distanceKm float64,
	vehicleClass kernel.VehicleClass,
	isNightWindow bool,
) (order.Price, error) {
	if distanceKm < 0 {
		return order.Price{}, errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	if err := vehicleClass.Validate(); err != nil {
		return order.Price{}, err
	}

	rate := c.tariff.rateFor(vehicleClass)
	billableKm := math.Max(0, distanceKm-c.tariff.freeKm)

	preVat := float64(c.tariff.base) + billableKm*rate
	if isNightWindow {
		preVat *= c.tariff.nightMultiplier
	}

	vat := preVat * c.tariff.vatRate
	total := int64(math.Ceil(preVat + vat))
	commission := int64(math.Floor(float64(total) * c.tariff.commissionRate))

	return order.NewPrice(c.tariff.base, rate, billableKm, preVat, vat, total, commission)
}

// QuoteManual accepts an operator-supplied final price and back-computes
// the VAT and commission split with the same subtraction rule, so the
// price invariant holds for overridden orders too.
func (c PriceCalculator) QuoteManual(total int64) (order.Price, error) {
	if total <= 0 {
		return order.Price{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d is not greater than 0", total))
	}

	preVat := float64(total) / (1 + c.tariff.vatRate)
	vat := float64(total) - preVat
	commission := int64(math.Floor(float64(total) * c.tariff.commissionRate))

	return order.NewPrice(0, 0, 0, preVat, vat, total, commission)
}
