package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewTestDatabase(zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&inventory.InventoryBatch{}, &inventory.StockMovement{}, &inventory.BarcodeBinding{}))

	// AutoMigrate cannot include the embedded StoreID in the composite index
	// (its tag lives on the shared struct), so rebuild it to match
	// migrations/0001_init_schema.up.sql — the upsert's ON CONFLICT target.
	require.NoError(t, db.Exec("DROP INDEX IF EXISTS idx_batch_store_drug_number").Error)
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX idx_batch_store_drug_number ON inventory_batches (store_id, drug_id, batch_number)").Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM inventory_batches")
		db.Exec("DELETE FROM stock_movements")
		db.Exec("DELETE FROM barcode_bindings")
	})

	return db
}

func testReceipt(storeID, drugID uuid.UUID, batchNumber string) *inventory.BatchReceipt {
	return &inventory.BatchReceipt{
		StoreID:             storeID,
		DrugID:              drugID,
		BatchNumber:         batchNumber,
		QuantityDelta:       decimal.NewFromInt(4),
		BaseUnitDelta:       decimal.NewFromInt(40),
		ReceivedUnit:        "box",
		ReceivedQuantity:    decimal.NewFromInt(4),
		MRP:                 decimal.NewFromFloat(120),
		PurchasePrice:       decimal.NewFromFloat(85.50),
		SupplierID:          uuid.New(),
		Location:            "A-12",
		ManufacturerBarcode: "8901234567890",
		ReceivedAt:          time.Now(),
	}
}

func TestGormInventoryBatchRepository_UpsertReceipt(t *testing.T) {
	db := newInventoryTestDB(t)
	repo := NewGormInventoryBatchRepository(db)
	ctx := context.Background()

	t.Run("creates batch on first receipt", func(t *testing.T) {
		storeID, drugID := uuid.New(), uuid.New()

		batch, err := repo.UpsertReceipt(ctx, testReceipt(storeID, drugID, "B100"))

		require.NoError(t, err)
		assert.True(t, batch.QuantityInStock.Equal(decimal.NewFromInt(4)))
		assert.True(t, batch.BaseUnitQuantity.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, "box", batch.ReceivedUnit)
		assert.Equal(t, "A-12", batch.Location)
	})

	t.Run("increments quantities on repeat receipt of same batch", func(t *testing.T) {
		storeID, drugID := uuid.New(), uuid.New()

		first, err := repo.UpsertReceipt(ctx, testReceipt(storeID, drugID, "B200"))
		require.NoError(t, err)

		second, err := repo.UpsertReceipt(ctx, testReceipt(storeID, drugID, "B200"))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.QuantityInStock.Equal(decimal.NewFromInt(8)))
		assert.True(t, second.BaseUnitQuantity.Equal(decimal.NewFromInt(80)))
	})

	t.Run("keeps existing prices when repeat receipt has none", func(t *testing.T) {
		storeID, drugID := uuid.New(), uuid.New()

		_, err := repo.UpsertReceipt(ctx, testReceipt(storeID, drugID, "B300"))
		require.NoError(t, err)

		bare := testReceipt(storeID, drugID, "B300")
		bare.MRP = decimal.Zero
		bare.PurchasePrice = decimal.Zero
		bare.Location = ""
		bare.ManufacturerBarcode = ""
		bare.ReceivedUnit = ""
		bare.ReceivedQuantity = decimal.Zero

		batch, err := repo.UpsertReceipt(ctx, bare)
		require.NoError(t, err)

		assert.True(t, batch.MRP.Equal(decimal.NewFromFloat(120)))
		assert.True(t, batch.PurchasePrice.Equal(decimal.NewFromFloat(85.50)))
		assert.Equal(t, "A-12", batch.Location)
		assert.Equal(t, "8901234567890", batch.ManufacturerBarcode)
		assert.Equal(t, "box", batch.ReceivedUnit)
		assert.True(t, batch.ReceivedQuantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("same batch number under different drugs stays separate", func(t *testing.T) {
		storeID := uuid.New()
		drugA, drugB := uuid.New(), uuid.New()

		batchA, err := repo.UpsertReceipt(ctx, testReceipt(storeID, drugA, "B400"))
		require.NoError(t, err)
		batchB, err := repo.UpsertReceipt(ctx, testReceipt(storeID, drugB, "B400"))
		require.NoError(t, err)

		assert.NotEqual(t, batchA.ID, batchB.ID)
		assert.True(t, batchA.QuantityInStock.Equal(decimal.NewFromInt(4)))
		assert.True(t, batchB.QuantityInStock.Equal(decimal.NewFromInt(4)))
	})

	t.Run("rejects receipt without batch number", func(t *testing.T) {
		receipt := testReceipt(uuid.New(), uuid.New(), "")

		_, err := repo.UpsertReceipt(ctx, receipt)

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeValidation))
	})
}

func TestGormStockMovementRepository(t *testing.T) {
	db := newInventoryTestDB(t)
	repo := NewGormStockMovementRepository(db)
	ctx := context.Background()

	storeID, batchID, drugID, grnID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	first, err := inventory.NewReceiptMovement(storeID, batchID, drugID, grnID, uuid.New(), "GRN-2026-00021", decimal.NewFromInt(4), decimal.NewFromInt(40))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, first))

	second, err := inventory.NewReceiptMovement(storeID, batchID, drugID, grnID, uuid.New(), "GRN-2026-00022", decimal.NewFromInt(2), decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, second))

	t.Run("sums batch quantities", func(t *testing.T) {
		total, err := repo.SumQuantityByBatch(ctx, batchID)

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(6)))
	})

	t.Run("lists movements by reference", func(t *testing.T) {
		movements, err := repo.ListByReference(ctx, inventory.ReferenceTypeGRN, grnID)

		require.NoError(t, err)
		require.Len(t, movements, 2)
		assert.Equal(t, inventory.MovementTypeIn, movements[0].Type)
	})
}

func TestGormBarcodeRegistryRepository(t *testing.T) {
	db := newInventoryTestDB(t)
	repo := NewGormBarcodeRegistryRepository(db)
	ctx := context.Background()

	storeID := uuid.New()

	t.Run("round-trips a binding", func(t *testing.T) {
		binding, err := inventory.NewBarcodeBinding(storeID, "8900000000017", inventory.BarcodeTypeManufacturer, uuid.New(), uuid.New(), "box")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, binding))

		found, err := repo.FindByBarcode(ctx, storeID, "8900000000017")

		require.NoError(t, err)
		assert.Equal(t, binding.BatchID, found.BatchID)
	})

	t.Run("rebind moves binding to new batch", func(t *testing.T) {
		binding, err := inventory.NewBarcodeBinding(storeID, "8900000000024", inventory.BarcodeTypeManufacturer, uuid.New(), uuid.New(), "box")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, binding))

		newBatch := uuid.New()
		binding.Rebind(binding.DrugID, newBatch, "strip")
		require.NoError(t, repo.Update(ctx, binding))

		found, err := repo.FindByBarcode(ctx, storeID, "8900000000024")
		require.NoError(t, err)
		assert.Equal(t, newBatch, found.BatchID)
		assert.Equal(t, "strip", found.Unit)
	})

	t.Run("missing barcode returns not found", func(t *testing.T) {
		_, err := repo.FindByBarcode(ctx, storeID, "0000000000000")

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeNotFound))
	})
}
