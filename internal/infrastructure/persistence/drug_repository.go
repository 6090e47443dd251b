package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/catalog"
	"github.com/pharmstore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDrugRepository implements catalog.DrugRepository using GORM
type GormDrugRepository struct {
	db *gorm.DB
}

// NewGormDrugRepository creates a new GORM-based drug repository
func NewGormDrugRepository(db *gorm.DB) *GormDrugRepository {
	return &GormDrugRepository{db: db}
}

// FindByID finds a drug by its ID across all stores
func (r *GormDrugRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Drug, error) {
	var drug catalog.Drug
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&drug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &drug, nil
}

// FindByIdentityForStore finds a store-local drug matching on name,
// strength and form
func (r *GormDrugRepository) FindByIdentityForStore(ctx context.Context, storeID uuid.UUID, name, strength, form string) (*catalog.Drug, error) {
	var drug catalog.Drug
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND name = ? AND strength = ? AND form = ?", storeID, name, strength, form).
		First(&drug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &drug, nil
}

// Create inserts a new drug record
func (r *GormDrugRepository) Create(ctx context.Context, drug *catalog.Drug) error {
	return r.db.WithContext(ctx).Create(drug).Error
}
