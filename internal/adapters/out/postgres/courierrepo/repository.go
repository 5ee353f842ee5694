package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM. The money
// counters are mutated with single UPDATE statements built on SQL
// expressions, so concurrent credits and debits compose correctly without
// row locks held across round trips.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
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

// Update saves the courier's profile columns. The money counters are
// deliberately excluded; they move only through the Apply* statements.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":          dto.Name,
			"phone":         dto.Phone,
			"vehicle_class": dto.VehicleClass,
			"blocked":       dto.Blocked,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ApplyDeliveryCredit adds the payout to the courier's balance and lifetime
// totals in one statement.
func (r *GormCourierRepository) ApplyDeliveryCredit(ctx context.Context, id kernel.UUID, amount int64) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"balance":          gorm.Expr("balance + ?", amount),
			"total_earned":     gorm.Expr("total_earned + ?", amount),
			"total_deliveries": gorm.Expr("total_deliveries + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", id.String())
	}

	return nil
}

// ApplyDebit subtracts amount from the courier's balance, guarded so no
// interleaving of debits can drive the balance negative.
func (r *GormCourierRepository) ApplyDebit(ctx context.Context, id kernel.UUID, amount int64) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND balance >= ?", id.Bytes(), amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Zero rows is either a missing courier or a failed balance guard.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&CourierDTO{}).
			Where("id = ?", id.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("courier", id.String())
		}
		return courier.ErrInsufficientBalance
	}

	return nil
}

// ApplyAdjustment adds a signed amount to the courier's balance. Positive
// adjustments also count toward total_earned; negative ones reuse the
// debit guard.
func (r *GormCourierRepository) ApplyAdjustment(ctx context.Context, id kernel.UUID, amount int64) error {
	if amount < 0 {
		return r.ApplyDebit(ctx, id, -amount)
	}

	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"balance":      gorm.Expr("balance + ?", amount),
			"total_earned": gorm.Expr("total_earned + ?", amount),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", id.String())
	}

	return nil
}
