package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryBatch represents a physical stock batch of a drug at a store,
// uniquely identified by (store, drug, batch number). Quantities are tracked
// twice: in the unit the goods arrived in (QuantityInStock) and in the
// drug's base dispensing unit (BaseUnitQuantity). Dispensing always works
// against base units.
type InventoryBatch struct {
	shared.StoreAggregateRoot
	DrugID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_batch_store_drug_number,priority:2"`
	BatchNumber         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_batch_store_drug_number,priority:3"`
	ExpiryDate          *time.Time      `gorm:"index"`
	QuantityInStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BaseUnitQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BaseUnitReserved    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedUnit        string          `gorm:"type:varchar(20)"`
	ReceivedQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MRP                 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchasePrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SupplierID          uuid.UUID       `gorm:"type:uuid;index"`
	Location            string          `gorm:"type:varchar(100)"`
	ManufacturerBarcode string          `gorm:"type:varchar(100)"`
	LastReceivedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryBatch) TableName() string {
	return "inventory_batches"
}

// AvailableBaseUnits returns base units on hand minus reservations
func (b *InventoryBatch) AvailableBaseUnits() decimal.Decimal {
	available := b.BaseUnitQuantity.Sub(b.BaseUnitReserved)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// IsExpired returns true if the batch is past its expiry date
func (b *InventoryBatch) IsExpired() bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(time.Now())
}

// BatchReceipt is the typed write record for one received batch line. The
// repository folds it into the batch row atomically: quantities are
// incremented, descriptive fields (prices, location, barcode) only replace
// existing values when the receipt carries a meaningful one.
type BatchReceipt struct {
	StoreID             uuid.UUID
	DrugID              uuid.UUID
	BatchNumber         string
	ExpiryDate          *time.Time
	QuantityDelta       decimal.Decimal
	BaseUnitDelta       decimal.Decimal
	ReceivedUnit        string
	ReceivedQuantity    decimal.Decimal
	MRP                 decimal.Decimal
	PurchasePrice       decimal.Decimal
	SupplierID          uuid.UUID
	Location            string
	ManufacturerBarcode string
	ReceivedAt          time.Time
}

// Validate checks the receipt for structurally invalid values
func (r *BatchReceipt) Validate() error {
	if r.StoreID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Batch receipt store ID cannot be empty")
	}
	if r.DrugID == uuid.Nil {
		return shared.NewDomainError(shared.CodeValidation, "Batch receipt drug ID cannot be empty")
	}
	if r.BatchNumber == "" {
		return shared.NewDomainError(shared.CodeValidation, "Batch receipt batch number cannot be empty")
	}
	if r.QuantityDelta.IsNegative() || r.BaseUnitDelta.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Batch receipt quantities cannot be negative")
	}
	return nil
}
