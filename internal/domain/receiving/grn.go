package receiving

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GRNStatus represents the status of a goods receipt note
type GRNStatus string

const (
	GRNStatusDraft      GRNStatus = "DRAFT"
	GRNStatusInProgress GRNStatus = "IN_PROGRESS"
	GRNStatusCompleted  GRNStatus = "COMPLETED"
)

// IsValid checks if the status is a valid GRNStatus
func (s GRNStatus) IsValid() bool {
	switch s {
	case GRNStatusDraft, GRNStatusInProgress, GRNStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of GRNStatus
func (s GRNStatus) String() string {
	return string(s)
}

// UnresolvedBatchNumber is the placeholder written by the intake UI for
// lines whose physical batch has not been identified yet. Items carrying it
// must never reach inventory.
const UnresolvedBatchNumber = "TBD"

// GRNItem represents a received line on a goods receipt note.
// A split line (IsSplit) was fulfilled across multiple physical batches and
// carries its batch-bearing children; the parent itself holds no batch.
type GRNItem struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	GRNID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	POItemID            uuid.UUID       `gorm:"type:uuid;not null"`
	DrugID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchNumber         string          `gorm:"type:varchar(50);not null"`
	ExpiryDate          *time.Time      `gorm:""`
	ReceivedQty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FreeQty             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MRP                 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Location            string          `gorm:"type:varchar(100)"`
	ManufacturerBarcode string          `gorm:"type:varchar(100)"`
	IsSplit             bool            `gorm:"not null;default:false"`
	ParentItemID        *uuid.UUID      `gorm:"type:uuid;index"`
	LineNo              int             `gorm:"not null;default:0"`
	Children            []GRNItem       `gorm:"foreignKey:ParentItemID;references:ID"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GRNItem) TableName() string {
	return "grn_items"
}

// TotalQty returns received plus free quantity for the line
func (i *GRNItem) TotalQty() decimal.Decimal {
	return i.ReceivedQty.Add(i.FreeQty)
}

// HasUnresolvedBatch returns true if the line still carries the placeholder
// batch number
func (i *GRNItem) HasUnresolvedBatch() bool {
	return i.BatchNumber == UnresolvedBatchNumber
}

// GRNDiscrepancy records a delta noted during intake (short delivery,
// damaged units). Discrepancies are informational on the completion payload
// and never affect inventory arithmetic.
type GRNDiscrepancy struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	GRNID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	Kind      string          `gorm:"type:varchar(30);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note      string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GRNDiscrepancy) TableName() string {
	return "grn_discrepancies"
}

// GoodsReceiptNote represents a supplier delivery recorded against a
// purchase order. Items holds only top-level lines; children of split lines
// are reachable through Items[i].Children.
type GoodsReceiptNote struct {
	shared.StoreAggregateRoot
	GRNNumber       string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_grn_store_number,priority:2"`
	SupplierID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	PurchaseOrderID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status          GRNStatus        `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CompletedAt     *time.Time       `gorm:""`
	Items           []GRNItem        `gorm:"foreignKey:GRNID;references:ID"`
	Discrepancies   []GRNDiscrepancy `gorm:"foreignKey:GRNID;references:ID"`
}

// TableName returns the table name for GORM
func (GoodsReceiptNote) TableName() string {
	return "goods_receipt_notes"
}

// CanComplete returns true if the note is in a completable state
func (g *GoodsReceiptNote) CanComplete() bool {
	return g.Status == GRNStatusDraft || g.Status == GRNStatusInProgress
}

// FlattenItems flattens the item tree into independent batch-bearing lines:
// split parents are replaced by their children, everything else passes
// through unchanged. The returned order follows the note's line order, with
// children in their recorded sequence.
func (g *GoodsReceiptNote) FlattenItems() []GRNItem {
	flattened := make([]GRNItem, 0, len(g.Items))
	for _, item := range g.Items {
		if item.IsSplit {
			flattened = append(flattened, item.Children...)
			continue
		}
		flattened = append(flattened, item)
	}
	return flattened
}

// CountUnresolved returns how many of the given lines still carry the
// unresolved batch placeholder
func CountUnresolved(items []GRNItem) int {
	count := 0
	for _, item := range items {
		if item.HasUnresolvedBatch() {
			count++
		}
	}
	return count
}

// Complete transitions the note to the given terminal status and stamps the
// completion time. Only DRAFT and IN_PROGRESS notes can complete, and only
// once; the transition raises a GRNCompletedEvent.
func (g *GoodsReceiptNote) Complete(status GRNStatus) error {
	if status != GRNStatusCompleted {
		return shared.NewDomainErrorf(shared.CodeValidation, "Cannot complete GRN %s with status %q", g.GRNNumber, status)
	}
	if !g.CanComplete() {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "GRN %s is %s; only draft or in-progress GRNs can be completed", g.GRNNumber, g.Status)
	}

	now := time.Now()
	g.Status = GRNStatusCompleted
	g.CompletedAt = &now
	g.UpdatedAt = now

	g.AddDomainEvent(NewGRNCompletedEvent(g))

	return nil
}

// ItemCount returns the number of top-level lines on the note
func (g *GoodsReceiptNote) ItemCount() int {
	return len(g.Items)
}

// FormatGRNNumber builds the canonical receipt reference for a store's
// yearly sequence, e.g. GRN-2026-00017
func FormatGRNNumber(year, sequence int) string {
	return fmt.Sprintf("GRN-%04d-%05d", year, sequence)
}
