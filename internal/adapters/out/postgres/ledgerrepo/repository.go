package ledgerrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormLedgerRepository implements LedgerRepository using GORM. Entries are
// insert-only; the only mutable rows in this package are payout requests.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append inserts one ledger entry. A delivery credit colliding with an
// existing credit for the same order trips the partial unique index and
// comes back as ports.ErrDuplicateCredit so the caller aborts instead of
// paying twice.
func (r *GormLedgerRepository) Append(ctx context.Context, entry ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode &&
			entry.Kind() == ledger.KindDeliveryCredit {
			return ports.ErrDuplicateCredit
		}
		return err
	}

	return nil
}

// SumForCourier recomputes the courier's balance as the signed sum of all
// their entries.
func (r *GormLedgerRepository) SumForCourier(ctx context.Context, courierID kernel.UUID) (int64, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var sum int64
	err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("courier_id = ?", courierID.Bytes()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

// ListForCourier returns the courier's entries, newest first.
func (r *GormLedgerRepository) ListForCourier(
	ctx context.Context,
	courierID kernel.UUID,
	limit int,
) ([]ledger.Entry, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := entryToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// AddPayoutRequest persists a new payout request.
func (r *GormLedgerRepository) AddPayoutRequest(ctx context.Context, request *ledger.PayoutRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := payoutFromDomain(request)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPayoutRequest retrieves a payout request by ID.
func (r *GormLedgerRepository) GetPayoutRequest(ctx context.Context, id kernel.UUID) (*ledger.PayoutRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PayoutRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payoutRequest", id.String())
		}
		return nil, err
	}

	return payoutToDomain(dto)
}

// UpdatePayoutRequestIf saves the request only if its stored status still
// matches the expected one. Zero matched rows means another operator
// resolved it first.
func (r *GormLedgerRepository) UpdatePayoutRequestIf(
	ctx context.Context,
	request *ledger.PayoutRequest,
	expected ledger.PayoutStatus,
) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := payoutFromDomain(request)
	result := r.db.WithContext(ctx).
		Model(&PayoutRequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":      dto.Status,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStaleState
	}

	return nil
}
