package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// VehicleClass categorizes the transport a delivery needs. It drives the
// tariff rate multiplier and which couriers an order is broadcast to.
type VehicleClass int

const (
	// VehicleUnknown represents an invalid or undefined vehicle class.
	VehicleUnknown VehicleClass = iota

	// VehicleMotorcycle covers bikes and scooters, the default city class.
	VehicleMotorcycle

	// VehicleCar covers passenger cars for bulkier packages.
	VehicleCar

	// VehicleVan covers vans for cargo deliveries.
	VehicleVan
)

func vehicleClassStrings() map[VehicleClass]string {
	return map[VehicleClass]string{
		VehicleMotorcycle: "motorcycle",
		VehicleCar:        "car",
		VehicleVan:        "van",
	}
}

// VehicleClassFromString parses the wire form used by the HTTP API and the
// database. Returns an error for anything outside the known classes.
func VehicleClassFromString(s string) (VehicleClass, error) {
	for class, str := range vehicleClassStrings() {
		if str == s {
			return class, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleClass",
		fmt.Errorf("%q is not a known vehicle class", s))
}

// Validate checks the value is one of the defined classes.
func (v VehicleClass) Validate() error {
	if _, ok := vehicleClassStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleClass",
			fmt.Errorf("%d is not a valid vehicle class", int(v)))
	}
	return nil
}

// String implements fmt.Stringer.
func (v VehicleClass) String() string {
	if s, ok := vehicleClassStrings()[v]; ok {
		return s
	}
	return "unknown"
}
