// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The money columns are only ever written by the atomic Apply*
// statements in the repository, so the mapped values here are read-side.
type CourierDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Phone           string `gorm:"uniqueIndex"`
	VehicleClass    int
	Blocked         bool
	Balance         int64
	TotalDeliveries int64
	TotalEarned     int64
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Phone:           aggregate.Phone(),
		VehicleClass:    int(aggregate.VehicleClass()),
		Blocked:         aggregate.IsBlocked(),
		Balance:         aggregate.Balance(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		TotalEarned:     aggregate.TotalEarned(),
	}
}

// toDomain converts a database DTO back into a courier aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Phone,
		kernel.VehicleClass(dto.VehicleClass),
		dto.Blocked,
		dto.Balance,
		dto.TotalDeliveries,
		dto.TotalEarned,
	)
}
