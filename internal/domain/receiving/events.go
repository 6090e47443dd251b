package receiving

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeGRNCompleted = "receiving.grn.completed"
)

// GRNCompletedEvent is raised after a goods receipt note finishes its
// completion workflow. It is written to the outbox inside the completion
// transaction and published after commit.
type GRNCompletedEvent struct {
	shared.BaseDomainEvent
	GRNID           uuid.UUID `json:"grn_id"`
	GRNNumber       string    `json:"grn_number"`
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	ItemCount       int       `json:"item_count"`
	CompletedAt     time.Time `json:"completed_at"`
}

// NewGRNCompletedEvent creates a completion event from the note's final state
func NewGRNCompletedEvent(grn *GoodsReceiptNote) *GRNCompletedEvent {
	completedAt := time.Now()
	if grn.CompletedAt != nil {
		completedAt = *grn.CompletedAt
	}
	return &GRNCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGRNCompleted, "GoodsReceiptNote", grn.ID, grn.StoreID),
		GRNID:           grn.ID,
		GRNNumber:       grn.GRNNumber,
		PurchaseOrderID: grn.PurchaseOrderID,
		SupplierID:      grn.SupplierID,
		ItemCount:       grn.ItemCount(),
		CompletedAt:     completedAt,
	}
}
