package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusSent              PurchaseOrderStatus = "SENT"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusPartiallyReceived,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// PurchaseOrderItem represents a line item in a purchase order.
// PackUnit/PackSize describe the supplier's packaging as declared at order
// time; the receiving engine uses them as conversion input.
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DrugID      uuid.UUID       `gorm:"type:uuid;not null"`
	OrderedQty  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQty decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PackUnit    string          `gorm:"type:varchar(20);not null;default:'unit'"`
	PackSize    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQty.GreaterThanOrEqual(i.OrderedQty)
}

// RemainingQty returns the quantity still to be received
func (i *PurchaseOrderItem) RemainingQty() decimal.Decimal {
	remaining := i.OrderedQty.Sub(i.ReceivedQty)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// PurchaseOrder represents a purchase order aggregate root.
// The receiving engine only mutates item received quantities and the order
// status; orders are created and cancelled elsewhere.
type PurchaseOrder struct {
	shared.StoreAggregateRoot
	OrderNumber string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_po_store_number,priority:2"`
	SupplierID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// ItemByID returns an item by its ID, or nil when absent
func (o *PurchaseOrder) ItemByID(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// HasReceivedAnyGoods returns true if any item has a received quantity
func (o *PurchaseOrder) HasReceivedAnyGoods() bool {
	for _, item := range o.Items {
		if item.ReceivedQty.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// IsFullyReceived returns true if every item has been fully received
func (o *PurchaseOrder) IsFullyReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

// DeriveStatusAfterReceipt computes the fulfillment status from cumulative
// received quantities. force marks the order RECEIVED regardless of
// shortage (explicit force-completion by the operator). When nothing has
// been received yet the current status is kept.
func (o *PurchaseOrder) DeriveStatusAfterReceipt(force bool) PurchaseOrderStatus {
	if force {
		return PurchaseOrderStatusReceived
	}
	if o.IsFullyReceived() {
		return PurchaseOrderStatusReceived
	}
	if o.HasReceivedAnyGoods() {
		return PurchaseOrderStatusPartiallyReceived
	}
	return o.Status
}
