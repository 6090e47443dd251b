package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/procurement"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository
// using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GORM-based purchase order
// repository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID loads a purchase order with its items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// IncrementReceivedQty atomically adds qty to an item's received quantity.
// The increment happens in SQL so concurrent receipts never lose updates.
func (r *GormPurchaseOrderRepository) IncrementReceivedQty(ctx context.Context, itemID uuid.UUID, qty decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrderItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"received_qty": gorm.Expr("received_qty + ?", qty),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateStatus persists a new fulfillment status for the order
func (r *GormPurchaseOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status procurement.PurchaseOrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
