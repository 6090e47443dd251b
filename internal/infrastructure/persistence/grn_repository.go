package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormGRNRepository implements receiving.GRNRepository using GORM
type GormGRNRepository struct {
	db *gorm.DB
}

// NewGormGRNRepository creates a new GORM-based GRN repository
func NewGormGRNRepository(db *gorm.DB) *GormGRNRepository {
	return &GormGRNRepository{db: db}
}

// FindByIDForStore loads a note with its item tree scoped to the store
func (r *GormGRNRepository) FindByIDForStore(ctx context.Context, storeID, grnID uuid.UUID) (*receiving.GoodsReceiptNote, error) {
	var grn receiving.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_item_id IS NULL").Order("line_no ASC")
		}).
		Preload("Items.Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Preload("Discrepancies").
		Where("id = ? AND store_id = ?", grnID, storeID).
		First(&grn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &grn, nil
}

// RewriteItemDrug repoints all items of the note from one drug to another
func (r *GormGRNRepository) RewriteItemDrug(ctx context.Context, grnID, fromDrug, toDrug uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&receiving.GRNItem{}).
		Where("grn_id = ? AND drug_id = ?", grnID, fromDrug).
		Updates(map[string]interface{}{
			"drug_id":    toDrug,
			"updated_at": time.Now(),
		}).Error
}

// UpdateCompletion persists the terminal status and completion time.
// The status predicate is the write-time guard against two concurrent
// completions of the same note: under read committed both can load a
// completable note, but only one update matches; the loser gets
// ErrInvalidState and its transaction rolls back.
func (r *GormGRNRepository) UpdateCompletion(ctx context.Context, grnID uuid.UUID, status receiving.GRNStatus, completedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&receiving.GoodsReceiptNote{}).
		Where("id = ? AND status IN ?", grnID, []receiving.GRNStatus{receiving.GRNStatusDraft, receiving.GRNStatusInProgress}).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInvalidState
	}
	return nil
}
