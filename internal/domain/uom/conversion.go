package uom

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitConversion declares how many base dispensing units one pack unit of a
// drug contains, e.g. one "box" of a given drug is 10 strips. Conversions
// are store-scoped configuration maintained alongside the catalog.
type UnitConversion struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_uom_store_drug_unit,priority:1"`
	DrugID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_uom_store_drug_unit,priority:2"`
	FromUnit  string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_uom_store_drug_unit,priority:3"`
	ToUnit    string          `gorm:"type:varchar(20);not null"`
	Factor    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UnitConversion) TableName() string {
	return "unit_conversions"
}

// NewUnitConversion creates a conversion rule for a drug's pack unit
func NewUnitConversion(storeID, drugID uuid.UUID, fromUnit, toUnit string, factor decimal.Decimal) (*UnitConversion, error) {
	if strings.TrimSpace(fromUnit) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Conversion source unit cannot be empty")
	}
	if !factor.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Conversion factor must be positive")
	}
	now := time.Now()
	return &UnitConversion{
		ID:        uuid.New(),
		StoreID:   storeID,
		DrugID:    drugID,
		FromUnit:  fromUnit,
		ToUnit:    toUnit,
		Factor:    factor,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UnitConversionRepository provides access to conversion rules
type UnitConversionRepository interface {
	// FindFactor returns the configured factor for converting one fromUnit of
	// the drug into base units. Returns shared.ErrNotFound when no rule exists.
	FindFactor(ctx context.Context, storeID, drugID uuid.UUID, fromUnit string) (decimal.Decimal, error)
}
