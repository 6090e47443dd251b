package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func orderWithItems(items ...PurchaseOrderItem) *PurchaseOrder {
	return &PurchaseOrder{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(uuid.New()),
		OrderNumber:        "PO-2026-00001",
		SupplierID:         uuid.New(),
		Status:             PurchaseOrderStatusSent,
		Items:              items,
	}
}

func TestPurchaseOrder_DeriveStatusAfterReceipt(t *testing.T) {
	t.Run("received when all items fully received", func(t *testing.T) {
		order := orderWithItems(
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(5), ReceivedQty: decimal.NewFromInt(5)},
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(3), ReceivedQty: decimal.NewFromInt(3)},
		)
		assert.Equal(t, PurchaseOrderStatusReceived, order.DeriveStatusAfterReceipt(false))
	})

	t.Run("partially received when some quantity landed", func(t *testing.T) {
		order := orderWithItems(
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(5), ReceivedQty: decimal.NewFromInt(2)},
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(3)},
		)
		assert.Equal(t, PurchaseOrderStatusPartiallyReceived, order.DeriveStatusAfterReceipt(false))
	})

	t.Run("keeps current status when nothing received", func(t *testing.T) {
		order := orderWithItems(
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(5)},
		)
		assert.Equal(t, PurchaseOrderStatusSent, order.DeriveStatusAfterReceipt(false))
	})

	t.Run("force overrides shortage", func(t *testing.T) {
		order := orderWithItems(
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(5), ReceivedQty: decimal.NewFromInt(1)},
		)
		assert.Equal(t, PurchaseOrderStatusReceived, order.DeriveStatusAfterReceipt(true))
	})

	t.Run("over-receipt still counts as received", func(t *testing.T) {
		order := orderWithItems(
			PurchaseOrderItem{ID: uuid.New(), OrderedQty: decimal.NewFromInt(5), ReceivedQty: decimal.NewFromInt(6)},
		)
		assert.Equal(t, PurchaseOrderStatusReceived, order.DeriveStatusAfterReceipt(false))
	})
}

func TestPurchaseOrderItem_RemainingQty(t *testing.T) {
	item := PurchaseOrderItem{OrderedQty: decimal.NewFromInt(5), ReceivedQty: decimal.NewFromInt(2)}
	assert.True(t, item.RemainingQty().Equal(decimal.NewFromInt(3)))

	over := PurchaseOrderItem{OrderedQty: decimal.NewFromInt(5), ReceivedQty: decimal.NewFromInt(7)}
	assert.True(t, over.RemainingQty().Equal(decimal.Zero))
}

func TestPurchaseOrder_ItemByID(t *testing.T) {
	itemID := uuid.New()
	order := orderWithItems(PurchaseOrderItem{ID: itemID, OrderedQty: decimal.NewFromInt(1)})

	assert.NotNil(t, order.ItemByID(itemID))
	assert.Nil(t, order.ItemByID(uuid.New()))
}
