package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// NextNumber draws the next order number from the database sequence.
// Sequences never roll back, so an aborted creation leaves a gap, which
// is acceptable: numbers must be unique and increasing, not dense.
func (r *GormOrderRepository) NextNumber(ctx context.Context) (int64, error) {
	var number int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('order_numbers')").Scan(&number).Error
	if err != nil {
		return 0, err
	}
	return number, nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-facing number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateIf saves the order only if its stored status still matches the
// expected one. Zero matched rows means a concurrent writer got there
// first and the caller's transition is stale.
func (r *GormOrderRepository) UpdateIf(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStaleState
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AppendHistory inserts one status history row.
func (r *GormOrderRepository) AppendHistory(ctx context.Context, entry order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetHistory returns the order's status history, oldest first.
func (r *GormOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := historyToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FindClaimable returns up to limit published orders for the vehicle class,
// oldest publication first. Candidate rows are locked with SKIP LOCKED so
// concurrent claimers spread over different orders instead of queueing on
// the same one.
func (r *GormOrderRepository) FindClaimable(
	ctx context.Context,
	vehicleClass kernel.VehicleClass,
	limit int,
) ([]*order.Order, error) {
	if err := vehicleClass.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND vehicle_class = ?", int(order.Published), int(vehicleClass)).
		Order("published_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindPublishedBefore returns published orders whose publication is older
// than the cutoff, oldest first.
func (r *GormOrderRepository) FindPublishedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND published_at < ?", int(order.Published), cutoff).
		Order("published_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
