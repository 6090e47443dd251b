package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
)

// BarcodeType classifies where a barcode value comes from
type BarcodeType string

const (
	BarcodeTypeManufacturer BarcodeType = "MANUFACTURER"
	BarcodeTypeInternal     BarcodeType = "INTERNAL"
)

// BarcodeBinding maps a scannable barcode to the batch it should resolve
// to at point of sale. A barcode value is unique per store; when the same
// manufacturer barcode arrives on a newer batch the binding moves, so scans
// always resolve to the most recently received stock.
type BarcodeBinding struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key"`
	StoreID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_barcode_store_value,priority:1"`
	Barcode     string      `gorm:"type:varchar(100);not null;uniqueIndex:idx_barcode_store_value,priority:2"`
	Type        BarcodeType `gorm:"type:varchar(20);not null;default:'MANUFACTURER'"`
	DrugID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	BatchID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	Unit        string      `gorm:"type:varchar(20)"`
	CreatedAt   time.Time   `gorm:"not null"`
	UpdatedAt   time.Time   `gorm:"not null"`
	LastBoundAt time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BarcodeBinding) TableName() string {
	return "barcode_bindings"
}

// NewBarcodeBinding creates a binding from a barcode to a batch
func NewBarcodeBinding(storeID uuid.UUID, barcode string, barcodeType BarcodeType, drugID, batchID uuid.UUID, unit string) (*BarcodeBinding, error) {
	if barcode == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Barcode value cannot be empty")
	}
	now := time.Now()
	return &BarcodeBinding{
		ID:          uuid.New(),
		StoreID:     storeID,
		Barcode:     barcode,
		Type:        barcodeType,
		DrugID:      drugID,
		BatchID:     batchID,
		Unit:        unit,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastBoundAt: now,
	}, nil
}

// Rebind points the binding at a different batch. The newest received batch
// wins; point-of-sale scans should hit current stock.
func (b *BarcodeBinding) Rebind(drugID, batchID uuid.UUID, unit string) {
	now := time.Now()
	b.DrugID = drugID
	b.BatchID = batchID
	if unit != "" {
		b.Unit = unit
	}
	b.UpdatedAt = now
	b.LastBoundAt = now
}
