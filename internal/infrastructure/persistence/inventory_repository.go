package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryBatchRepository implements inventory.InventoryBatchRepository
// using GORM
type GormInventoryBatchRepository struct {
	db *gorm.DB
}

// NewGormInventoryBatchRepository creates a new GORM-based batch repository
func NewGormInventoryBatchRepository(db *gorm.DB) *GormInventoryBatchRepository {
	return &GormInventoryBatchRepository{db: db}
}

// UpsertReceipt folds a receipt into the batch row in one statement.
// On conflict with the (store, drug, batch number) key the quantities are
// incremented and descriptive fields only replace existing values when the
// receipt carries a meaningful one, so a receipt without a price or
// location never wipes what an earlier receipt recorded.
func (r *GormInventoryBatchRepository) UpsertReceipt(ctx context.Context, receipt *inventory.BatchReceipt) (*inventory.InventoryBatch, error) {
	if err := receipt.Validate(); err != nil {
		return nil, err
	}

	batch := &inventory.InventoryBatch{
		StoreAggregateRoot:  shared.NewStoreAggregateRoot(receipt.StoreID),
		DrugID:              receipt.DrugID,
		BatchNumber:         receipt.BatchNumber,
		ExpiryDate:          receipt.ExpiryDate,
		QuantityInStock:     receipt.QuantityDelta,
		BaseUnitQuantity:    receipt.BaseUnitDelta,
		ReceivedUnit:        receipt.ReceivedUnit,
		ReceivedQuantity:    receipt.ReceivedQuantity,
		MRP:                 receipt.MRP,
		PurchasePrice:       receipt.PurchasePrice,
		SupplierID:          receipt.SupplierID,
		Location:            receipt.Location,
		ManufacturerBarcode: receipt.ManufacturerBarcode,
		LastReceivedAt:      receipt.ReceivedAt,
	}
	if batch.LastReceivedAt.IsZero() {
		batch.LastReceivedAt = time.Now()
	}

	assignments := map[string]interface{}{
		"quantity_in_stock":  gorm.Expr("inventory_batches.quantity_in_stock + ?", receipt.QuantityDelta),
		"base_unit_quantity": gorm.Expr("inventory_batches.base_unit_quantity + ?", receipt.BaseUnitDelta),
		"supplier_id":        receipt.SupplierID,
		"last_received_at":   batch.LastReceivedAt,
		"updated_at":         time.Now(),
	}
	if receipt.ReceivedUnit != "" {
		assignments["received_unit"] = receipt.ReceivedUnit
		assignments["received_quantity"] = receipt.ReceivedQuantity
	}
	if receipt.ExpiryDate != nil {
		assignments["expiry_date"] = receipt.ExpiryDate
	}
	if receipt.MRP.IsPositive() {
		assignments["mrp"] = receipt.MRP
	}
	if receipt.PurchasePrice.IsPositive() {
		assignments["purchase_price"] = receipt.PurchasePrice
	}
	if receipt.Location != "" {
		assignments["location"] = receipt.Location
	}
	if receipt.ManufacturerBarcode != "" {
		assignments["manufacturer_barcode"] = receipt.ManufacturerBarcode
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "store_id"},
				{Name: "drug_id"},
				{Name: "batch_number"},
			},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(batch).Error
	if err != nil {
		return nil, err
	}

	// Re-read by natural key: on conflict the insert ID is discarded and the
	// existing row kept its identity
	return r.FindByKey(ctx, receipt.StoreID, receipt.DrugID, receipt.BatchNumber)
}

// FindByID finds a batch by its ID
func (r *GormInventoryBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByKey finds a batch by its natural key
func (r *GormInventoryBatchRepository) FindByKey(ctx context.Context, storeID, drugID uuid.UUID, batchNumber string) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND drug_id = ? AND batch_number = ?", storeID, drugID, batchNumber).
		First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// GormStockMovementRepository implements inventory.StockMovementRepository
// using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GORM-based movement repository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// SumQuantityByBatch returns the signed sum of movement quantities for a batch
func (r *GormStockMovementRepository) SumQuantityByBatch(ctx context.Context, batchID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(CASE WHEN type = 'OUT' THEN -quantity ELSE quantity END), 0) AS total").
		Where("batch_id = ?", batchID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// ListByReference returns all movements recorded for a reference document
func (r *GormStockMovementRepository) ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID).
		Order("created_at ASC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// GormBarcodeRegistryRepository implements
// inventory.BarcodeRegistryRepository using GORM
type GormBarcodeRegistryRepository struct {
	db *gorm.DB
}

// NewGormBarcodeRegistryRepository creates a new GORM-based barcode
// repository
func NewGormBarcodeRegistryRepository(db *gorm.DB) *GormBarcodeRegistryRepository {
	return &GormBarcodeRegistryRepository{db: db}
}

// FindByBarcode finds a binding by store and barcode value
func (r *GormBarcodeRegistryRepository) FindByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*inventory.BarcodeBinding, error) {
	var binding inventory.BarcodeBinding
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND barcode = ?", storeID, barcode).
		First(&binding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &binding, nil
}

// Create inserts a new binding
func (r *GormBarcodeRegistryRepository) Create(ctx context.Context, binding *inventory.BarcodeBinding) error {
	return r.db.WithContext(ctx).Create(binding).Error
}

// Update persists changes to an existing binding
func (r *GormBarcodeRegistryRepository) Update(ctx context.Context, binding *inventory.BarcodeBinding) error {
	result := r.db.WithContext(ctx).Save(binding)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
