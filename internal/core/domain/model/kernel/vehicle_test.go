package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleClassFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected kernel.VehicleClass
	}{
		{"motorcycle", kernel.VehicleMotorcycle},
		{"car", kernel.VehicleCar},
		{"van", kernel.VehicleVan},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			class, err := kernel.VehicleClassFromString(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, class)
			assert.Equal(t, tt.input, class.String())
		})
	}

	t.Run("should fail on unknown class", func(t *testing.T) {
		_, err := kernel.VehicleClassFromString("bicycle")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bicycle")
	})
}

func TestVehicleClass_Validate(t *testing.T) {
	require.NoError(t, kernel.VehicleMotorcycle.Validate())
	require.NoError(t, kernel.VehicleCar.Validate())
	require.NoError(t, kernel.VehicleVan.Validate())

	require.Error(t, kernel.VehicleUnknown.Validate())
	require.Error(t, kernel.VehicleClass(42).Validate())
}

func TestVehicleClass_String_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", kernel.VehicleUnknown.String())
	assert.Equal(t, "unknown", kernel.VehicleClass(42).String())
}
