package receiving

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/procurement"
	receivingdomain "github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newQueryService(t *testing.T) (*ReceivingQueryService, *MockGRNRepository, *MockPurchaseOrderRepository) {
	t.Helper()
	grns := new(MockGRNRepository)
	orders := new(MockPurchaseOrderRepository)
	return NewReceivingQueryService(grns, orders, zaptest.NewLogger(t)), grns, orders
}

func TestReceivingQueryService_GetGRN(t *testing.T) {
	storeID := uuid.New()

	t.Run("maps note with split children and unresolved count", func(t *testing.T) {
		service, grns, _ := newQueryService(t)

		parentID := uuid.New()
		grn := &receivingdomain.GoodsReceiptNote{
			StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
			GRNNumber:          "GRN-2026-00017",
			SupplierID:         uuid.New(),
			PurchaseOrderID:    uuid.New(),
			Status:             receivingdomain.GRNStatusInProgress,
			Items: []receivingdomain.GRNItem{
				{
					ID:      parentID,
					IsSplit: true,
					Children: []receivingdomain.GRNItem{
						{ID: uuid.New(), ParentItemID: &parentID, BatchNumber: "B1", ReceivedQty: decimal.NewFromInt(2)},
						{ID: uuid.New(), ParentItemID: &parentID, BatchNumber: receivingdomain.UnresolvedBatchNumber, ReceivedQty: decimal.NewFromInt(1)},
					},
				},
			},
		}
		grns.On("FindByIDForStore", mock.Anything, storeID, grn.ID).Return(grn, nil)

		resp, err := service.GetGRN(context.Background(), storeID, grn.ID)

		require.NoError(t, err)
		assert.Equal(t, "GRN-2026-00017", resp.GRNNumber)
		assert.Equal(t, "IN_PROGRESS", resp.Status)
		require.Len(t, resp.Items, 1)
		require.Len(t, resp.Items[0].Children, 2)
		assert.Equal(t, 1, resp.UnresolvedItems)
	})

	t.Run("propagates not found", func(t *testing.T) {
		service, grns, _ := newQueryService(t)
		grnID := uuid.New()

		grns.On("FindByIDForStore", mock.Anything, storeID, grnID).Return(nil, shared.ErrNotFound)

		_, err := service.GetGRN(context.Background(), storeID, grnID)

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeNotFound))
	})
}

func TestReceivingQueryService_GetPurchaseOrder(t *testing.T) {
	storeID := uuid.New()

	t.Run("maps order lines with remaining quantities", func(t *testing.T) {
		service, _, orders := newQueryService(t)

		order := &procurement.PurchaseOrder{
			StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
			OrderNumber:        "PO-2026-00042",
			SupplierID:         uuid.New(),
			Status:             procurement.PurchaseOrderStatusPartiallyReceived,
			Items: []procurement.PurchaseOrderItem{
				{
					ID:          uuid.New(),
					DrugID:      uuid.New(),
					OrderedQty:  decimal.NewFromInt(5),
					ReceivedQty: decimal.NewFromInt(3),
					PackUnit:    "box",
					PackSize:    decimal.NewFromInt(10),
				},
			},
		}
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		resp, err := service.GetPurchaseOrder(context.Background(), storeID, order.ID)

		require.NoError(t, err)
		assert.Equal(t, "PARTIALLY_RECEIVED", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].RemainingQty.Equal(decimal.NewFromInt(2)))
	})

	t.Run("hides orders of other stores", func(t *testing.T) {
		service, _, orders := newQueryService(t)

		order := &procurement.PurchaseOrder{
			StoreAggregateRoot: shared.NewStoreAggregateRoot(uuid.New()),
			OrderNumber:        "PO-2026-00099",
		}
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err := service.GetPurchaseOrder(context.Background(), storeID, order.ID)

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeNotFound))
	})
}
