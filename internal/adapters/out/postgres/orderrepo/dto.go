// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite index on status, vehicle class and publication time backs the
// claim candidate scan and the expiry sweep.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       int64      `gorm:"uniqueIndex"`
	Sender       ContactDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver     ContactDTO `gorm:"embedded;embeddedPrefix:receiver_"`
	VehicleClass int        `gorm:"index:idx_orders_claimable,priority:2"`
	DistanceKm   float64
	Price        PriceDTO   `gorm:"embedded;embeddedPrefix:price_"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Status       int        `gorm:"index:idx_orders_claimable,priority:1"`
	CreatedAt    time.Time
	PublishedAt  *time.Time `gorm:"index:idx_orders_claimable,priority:3"`
	AssignedAt   *time.Time
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ContactDTO represents an embedded delivery party within the order table.
type ContactDTO struct {
	Name    string
	Phone   string
	Address string
}

// PriceDTO represents the embedded immutable price snapshot.
type PriceDTO struct {
	Base       int64
	PerKmRate  float64
	BillableKm float64
	PreVat     float64
	Vat        float64
	Total      int64
	Commission int64
	Payout     int64
}

// HistoryDTO represents one row of the append-only order status history.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	ActorType  int
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Note       string
	OccurredAt time.Time
}

// TableName specifies the database table name for history entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	price := aggregate.Price()

	return OrderDTO{
		ID:     aggregate.ID().Bytes(),
		Number: aggregate.Number(),
		Sender: ContactDTO{
			Name:    aggregate.Sender().Name(),
			Phone:   aggregate.Sender().Phone(),
			Address: aggregate.Sender().Address(),
		},
		Receiver: ContactDTO{
			Name:    aggregate.Receiver().Name(),
			Phone:   aggregate.Receiver().Phone(),
			Address: aggregate.Receiver().Address(),
		},
		VehicleClass: int(aggregate.VehicleClass()),
		DistanceKm:   aggregate.DistanceKm(),
		Price: PriceDTO{
			Base:       price.Base(),
			PerKmRate:  price.PerKmRate(),
			BillableKm: price.BillableKm(),
			PreVat:     price.PreVat(),
			Vat:        price.Vat(),
			Total:      price.Total(),
			Commission: price.Commission(),
			Payout:     price.Payout(),
		},
		CourierID:   courierID,
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		PublishedAt: aggregate.PublishedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CancelledAt: aggregate.CancelledAt(),
	}
}

// toDomain converts a database DTO back into an order aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	sender, err := kernel.NewContact(dto.Sender.Name, dto.Sender.Phone, dto.Sender.Address)
	if err != nil {
		return nil, err
	}
	receiver, err := kernel.NewContact(dto.Receiver.Name, dto.Receiver.Phone, dto.Receiver.Address)
	if err != nil {
		return nil, err
	}

	price, err := order.NewPrice(
		dto.Price.Base,
		dto.Price.PerKmRate,
		dto.Price.BillableKm,
		dto.Price.PreVat,
		dto.Price.Vat,
		dto.Price.Total,
		dto.Price.Commission,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		sender,
		receiver,
		kernel.VehicleClass(dto.VehicleClass),
		dto.DistanceKm,
		price,
		courierID,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.PublishedAt,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.CancelledAt,
	)
}

// historyFromDomain converts a history entry to its database representation.
func historyFromDomain(entry order.HistoryEntry) HistoryDTO {
	var actorID *uuid.UUID
	if id := entry.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return HistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		Status:     int(entry.Status()),
		ActorType:  int(entry.ActorType()),
		ActorID:    actorID,
		Note:       entry.Note(),
		OccurredAt: entry.OccurredAt(),
	}
}

// historyToDomain converts a database DTO back into a history entry.
func historyToDomain(dto HistoryDTO) (order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return order.HistoryEntry{}, actorErr
		}
		actorID = &aID
	}

	return order.RestoreHistoryEntry(
		id,
		orderID,
		order.Status(dto.Status),
		order.ActorType(dto.ActorType),
		actorID,
		dto.Note,
		dto.OccurredAt,
	), nil
}
