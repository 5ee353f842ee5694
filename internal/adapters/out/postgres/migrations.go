package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all dispatch tables, plus the
// two pieces AutoMigrate cannot express: the order number sequence and the
// partial unique index that makes double delivery credits impossible at
// the storage level.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryDTO{},
		&courierrepo.CourierDTO{},
		&ledgerrepo.EntryDTO{},
		&ledgerrepo.PayoutRequestDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS order_numbers").Error; err != nil {
		return fmt.Errorf("create order number sequence: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_delivery_credit_order ON ledger_entries (order_id) WHERE kind = %d",
		int(ledger.KindDeliveryCredit),
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create delivery credit index: %w", err)
	}

	return nil
}
