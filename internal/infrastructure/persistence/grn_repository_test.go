package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newGRNTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewTestDatabase(zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&receiving.GoodsReceiptNote{}, &receiving.GRNItem{}, &receiving.GRNDiscrepancy{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM goods_receipt_notes")
		db.Exec("DELETE FROM grn_items")
		db.Exec("DELETE FROM grn_discrepancies")
	})

	return db
}

func seedGRN(t *testing.T, db *gorm.DB, storeID uuid.UUID, number string, status receiving.GRNStatus) *receiving.GoodsReceiptNote {
	t.Helper()
	grn := &receiving.GoodsReceiptNote{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		GRNNumber:          number,
		SupplierID:         uuid.New(),
		PurchaseOrderID:    uuid.New(),
		Status:             status,
	}
	require.NoError(t, db.Create(grn).Error)
	return grn
}

func TestGormGRNRepository_FindByIDForStore(t *testing.T) {
	db := newGRNTestDB(t)
	repo := NewGormGRNRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	grn := seedGRN(t, db, storeID, "GRN-2026-00031", receiving.GRNStatusDraft)

	t.Run("loads a note for its store", func(t *testing.T) {
		found, err := repo.FindByIDForStore(ctx, storeID, grn.ID)

		require.NoError(t, err)
		assert.Equal(t, "GRN-2026-00031", found.GRNNumber)
	})

	t.Run("hides notes of other stores", func(t *testing.T) {
		_, err := repo.FindByIDForStore(ctx, uuid.New(), grn.ID)

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeNotFound))
	})
}

func TestGormGRNRepository_UpdateCompletion(t *testing.T) {
	db := newGRNTestDB(t)
	repo := NewGormGRNRepository(db)
	ctx := context.Background()

	t.Run("completes a draft note", func(t *testing.T) {
		grn := seedGRN(t, db, uuid.New(), "GRN-2026-00032", receiving.GRNStatusDraft)
		completedAt := time.Now()

		err := repo.UpdateCompletion(ctx, grn.ID, receiving.GRNStatusCompleted, completedAt)

		require.NoError(t, err)
		found, err := repo.FindByIDForStore(ctx, grn.StoreID, grn.ID)
		require.NoError(t, err)
		assert.Equal(t, receiving.GRNStatusCompleted, found.Status)
		require.NotNil(t, found.CompletedAt)
	})

	t.Run("refuses to rewrite a completed note", func(t *testing.T) {
		grn := seedGRN(t, db, uuid.New(), "GRN-2026-00033", receiving.GRNStatusDraft)
		first := time.Now().Add(-time.Hour)
		require.NoError(t, repo.UpdateCompletion(ctx, grn.ID, receiving.GRNStatusCompleted, first))

		err := repo.UpdateCompletion(ctx, grn.ID, receiving.GRNStatusCompleted, time.Now())

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeInvalidState))

		found, err := repo.FindByIDForStore(ctx, grn.StoreID, grn.ID)
		require.NoError(t, err)
		assert.Equal(t, first.UTC().Truncate(time.Second), found.CompletedAt.UTC().Truncate(time.Second))
	})

	t.Run("rejects an unknown note", func(t *testing.T) {
		err := repo.UpdateCompletion(ctx, uuid.New(), receiving.GRNStatusCompleted, time.Now())

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeInvalidState))
	})
}
