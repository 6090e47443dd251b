package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/pharmstore/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormUnitConversionRepository implements uom.UnitConversionRepository
// using GORM
type GormUnitConversionRepository struct {
	db *gorm.DB
}

// NewGormUnitConversionRepository creates a new GORM-based conversion
// repository
func NewGormUnitConversionRepository(db *gorm.DB) *GormUnitConversionRepository {
	return &GormUnitConversionRepository{db: db}
}

// FindFactor returns the configured factor for converting one fromUnit of
// the drug into base units
func (r *GormUnitConversionRepository) FindFactor(ctx context.Context, storeID, drugID uuid.UUID, fromUnit string) (decimal.Decimal, error) {
	var conversion uom.UnitConversion
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND drug_id = ? AND from_unit = ?", storeID, drugID, fromUnit).
		First(&conversion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return conversion.Factor, nil
}
