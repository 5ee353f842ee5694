// Package ledgerrepo provides data transfer objects and mapping functions
// for the earnings ledger and the payout request workflow.
package ledgerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO represents one immutable ledger row. The partial unique index on
// order_id for delivery credits is created by the migration, not a tag,
// since GORM cannot express partial indexes portably.
type EntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID  `gorm:"type:uuid;index"`
	OrderID    *uuid.UUID `gorm:"type:uuid"`
	Reference  string
	Amount     int64
	Kind       int
	OccurredAt time.Time
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// PayoutRequestDTO represents the database structure for payout requests.
type PayoutRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID   uuid.UUID `gorm:"type:uuid;index"`
	Amount      int64
	Status      int
	RequestedAt time.Time
	ResolvedAt  *time.Time
}

// TableName specifies the database table name for payout requests.
func (PayoutRequestDTO) TableName() string {
	return "payout_requests"
}

// entryFromDomain converts a ledger entry to its database representation.
func entryFromDomain(entry ledger.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := entry.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:         entry.ID().Bytes(),
		CourierID:  entry.CourierID().Bytes(),
		OrderID:    orderID,
		Reference:  entry.Reference(),
		Amount:     entry.Amount(),
		Kind:       int(entry.Kind()),
		OccurredAt: entry.OccurredAt(),
	}
}

// entryToDomain converts a database DTO back into a ledger entry.
func entryToDomain(dto EntryDTO) (ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ledger.Entry{}, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return ledger.Entry{}, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return ledger.Entry{}, orderErr
		}
		orderID = &oID
	}

	return ledger.RestoreEntry(
		id,
		courierID,
		orderID,
		dto.Reference,
		dto.Amount,
		ledger.EntryKind(dto.Kind),
		dto.OccurredAt,
	), nil
}

// payoutFromDomain converts a payout request to its database representation.
func payoutFromDomain(request *ledger.PayoutRequest) PayoutRequestDTO {
	return PayoutRequestDTO{
		ID:          request.ID().Bytes(),
		CourierID:   request.CourierID().Bytes(),
		Amount:      request.Amount(),
		Status:      int(request.Status()),
		RequestedAt: request.RequestedAt(),
		ResolvedAt:  request.ResolvedAt(),
	}
}

// payoutToDomain converts a database DTO back into a payout request.
func payoutToDomain(dto PayoutRequestDTO) (*ledger.PayoutRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestorePayoutRequest(
		id,
		courierID,
		dto.Amount,
		ledger.PayoutStatus(dto.Status),
		dto.RequestedAt,
		dto.ResolvedAt,
	)
}
