package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository provides access to purchase orders.
//
// IncrementReceivedQty must be a single atomic SQL increment so that two
// concurrent receipts against the same order item cannot lose updates; the
// engine never performs read-modify-write on received quantities in
// application code.
type PurchaseOrderRepository interface {
	// FindByID loads a purchase order with its items.
	// Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	// IncrementReceivedQty atomically adds qty to an item's received quantity
	IncrementReceivedQty(ctx context.Context, itemID uuid.UUID, qty decimal.Decimal) error
	// UpdateStatus persists a new fulfillment status for the order
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status PurchaseOrderStatus) error
}
