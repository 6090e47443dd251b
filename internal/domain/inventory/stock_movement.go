package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction and cause of a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// Reference types for stock movements
const (
	ReferenceTypeGRN        = "grn"
	ReferenceTypeSale       = "sale"
	ReferenceTypeAdjustment = "adjustment"
)

// StockMovement is one append-only ledger entry. Movements are never
// updated or deleted; batch quantities must always equal the sum of their
// movements.
type StockMovement struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	DrugID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          MovementType    `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BaseUnitQty   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReferenceType string          `gorm:"type:varchar(30);not null"`
	ReferenceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ActorID       uuid.UUID       `gorm:"type:uuid"`
	Note          string          `gorm:"type:varchar(500)"`
	CreatedAt     time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewReceiptMovement creates an IN movement for goods received through a
// GRN. grnNumber becomes the human-readable reason on the ledger row.
func NewReceiptMovement(storeID, batchID, drugID, grnID, actorID uuid.UUID, grnNumber string, qty, baseUnitQty decimal.Decimal) (*StockMovement, error) {
	if qty.IsNegative() || baseUnitQty.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Receipt movement quantity cannot be negative")
	}
	if grnNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Receipt movement GRN number cannot be empty")
	}
	return &StockMovement{
		ID:            uuid.New(),
		StoreID:       storeID,
		BatchID:       batchID,
		DrugID:        drugID,
		Type:          MovementTypeIn,
		Quantity:      qty,
		BaseUnitQty:   baseUnitQty,
		ReferenceType: ReferenceTypeGRN,
		ReferenceID:   grnID,
		ActorID:       actorID,
		Note:          grnNumber,
		CreatedAt:     time.Now(),
	}, nil
}
