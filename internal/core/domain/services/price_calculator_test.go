package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTariff(t *testing.T, classMultiplier map[kernel.VehicleClass]float64) services.Tariff {
	t.Helper()
	tariff, err := services.NewTariff(70, 3, 0, 0.18, 0.25, 1.5, classMultiplier)
	require.NoError(t, err)
	return tariff
}

func testCalculator(t *testing.T, classMultiplier map[kernel.VehicleClass]float64) services.PriceCalculator {
	t.Helper()
	calc, err := services.NewPriceCalculator(testTariff(t, classMultiplier))
	require.NoError(t, err)
	return calc
}

func TestNewTariff(t *testing.T) {
	t.Run("should validate rates", func(t *testing.T) {
		_, err := services.NewTariff(-1, 3, 0, 0.18, 0.25, 1.5, nil)
		require.Error(t, err)

		_, err = services.NewTariff(70, -3, 0, 0.18, 0.25, 1.5, nil)
		require.Error(t, err)

		_, err = services.NewTariff(70, 3, 0, 1.0, 0.25, 1.5, nil)
		require.Error(t, err)

		_, err = services.NewTariff(70, 3, 0, 0.18, 1.0, 1.5, nil)
		require.Error(t, err)

		_, err = services.NewTariff(70, 3, 0, 0.18, 0.25, 0.9, nil)
		require.Error(t, err)
	})

	t.Run("should reject non-positive class multipliers", func(t *testing.T) {
		_, err := services.NewTariff(70, 3, 0, 0.18, 0.25, 1.5,
			map[kernel.VehicleClass]float64{kernel.VehicleCar: 0})

		require.Error(t, err)
	})

	t.Run("should reject unknown classes in the multiplier map", func(t *testing.T) {
		_, err := services.NewTariff(70, 3, 0, 0.18, 0.25, 1.5,
			map[kernel.VehicleClass]float64{kernel.VehicleUnknown: 1.2})

		require.Error(t, err)
	})
}

func TestNewPriceCalculator_UnconstructedTariff(t *testing.T) {
	_, err := services.NewPriceCalculator(services.Tariff{})

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrTariffIsNotConstructed)
}

func TestPriceCalculator_Quote(t *testing.T) {
	calc := testCalculator(t, nil)

	t.Run("12 km daytime trip", func(t *testing.T) {
		price, err := calc.Quote(12, kernel.VehicleMotorcycle, false)

		require.NoError(t, err)
		assert.InDelta(t, 106.0, price.PreVat(), 0.0001)
		assert.InDelta(t, 19.08, price.Vat(), 0.0001)
		assert.Equal(t, int64(126), price.Total())
		assert.Equal(t, int64(31), price.Commission())
		assert.Equal(t, int64(95), price.Payout())
		assert.Equal(t, price.Total(), price.Commission()+price.Payout())
	})

	t.Run("night window multiplies before VAT", func(t *testing.T) {
		price, err := calc.Quote(12, kernel.VehicleMotorcycle, true)

		require.NoError(t, err)
		assert.InDelta(t, 159.0, price.PreVat(), 0.0001)
		assert.Equal(t, int64(188), price.Total())
		assert.Equal(t, int64(47), price.Commission())
		assert.Equal(t, int64(141), price.Payout())
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := calc.Quote(12, kernel.VehicleMotorcycle, false)
		require.NoError(t, err)
		second, err := calc.Quote(12, kernel.VehicleMotorcycle, false)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("class multiplier scales the per-km rate only", func(t *testing.T) {
		withCar := testCalculator(t, map[kernel.VehicleClass]float64{kernel.VehicleCar: 1.2})

		price, err := withCar.Quote(12, kernel.VehicleCar, false)

		require.NoError(t, err)
		assert.InDelta(t, 3.6, price.PerKmRate(), 0.0001)
		assert.InDelta(t, 113.2, price.PreVat(), 0.0001)
		assert.Equal(t, int64(134), price.Total())
		assert.Equal(t, int64(33), price.Commission())
		assert.Equal(t, int64(101), price.Payout())
	})

	t.Run("class without a multiplier prices at the plain rate", func(t *testing.T) {
		withCar := testCalculator(t, map[kernel.VehicleClass]float64{kernel.VehicleCar: 1.2})

		price, err := withCar.Quote(12, kernel.VehicleVan, false)

		require.NoError(t, err)
		assert.InDelta(t, 3.0, price.PerKmRate(), 0.0001)
	})

	t.Run("free allowance reduces billable distance", func(t *testing.T) {
		tariff, err := services.NewTariff(70, 3, 2, 0.18, 0.25, 1.5, nil)
		require.NoError(t, err)
		withAllowance, err := services.NewPriceCalculator(tariff)
		require.NoError(t, err)

		price, err := withAllowance.Quote(12, kernel.VehicleMotorcycle, false)

		require.NoError(t, err)
		assert.InDelta(t, 10.0, price.BillableKm(), 0.0001)
		assert.InDelta(t, 100.0, price.PreVat(), 0.0001)
		assert.Equal(t, int64(118), price.Total())
	})

	t.Run("trip shorter than the allowance bills zero distance", func(t *testing.T) {
		tariff, err := services.NewTariff(70, 3, 2, 0.18, 0.25, 1.5, nil)
		require.NoError(t, err)
		withAllowance, err := services.NewPriceCalculator(tariff)
		require.NoError(t, err)

		price, err := withAllowance.Quote(1, kernel.VehicleMotorcycle, false)

		require.NoError(t, err)
		assert.InDelta(t, 0.0, price.BillableKm(), 0.0001)
		assert.InDelta(t, 70.0, price.PreVat(), 0.0001)
		assert.Equal(t, int64(83), price.Total())
	})

	t.Run("should reject negative distance", func(t *testing.T) {
		_, err := calc.Quote(-1, kernel.VehicleMotorcycle, false)

		require.Error(t, err)
	})

	t.Run("should reject invalid vehicle class", func(t *testing.T) {
		_, err := calc.Quote(12, kernel.VehicleUnknown, false)

		require.Error(t, err)
	})
}

func TestPriceCalculator_QuoteManual(t *testing.T) {
	calc := testCalculator(t, nil)

	t.Run("should back-compute the split from the final amount", func(t *testing.T) {
		price, err := calc.QuoteManual(126)

		require.NoError(t, err)
		assert.Equal(t, int64(126), price.Total())
		assert.Equal(t, int64(31), price.Commission())
		assert.Equal(t, int64(95), price.Payout())
		assert.InDelta(t, float64(126), price.PreVat()+price.Vat(), 0.0001)
		assert.Equal(t, int64(0), price.Base())
	})

	t.Run("should reject non-positive totals", func(t *testing.T) {
		_, err := calc.QuoteManual(0)
		require.Error(t, err)

		_, err = calc.QuoteManual(-100)
		require.Error(t, err)
	})
}
