package receiving

import (
	"context"

	receivingdomain "github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GRNCompletedHandler reacts to completed goods receipts after commit.
// It currently records the completion for audit visibility; downstream
// consumers (reorder suggestions, supplier scorecards) subscribe the same
// way.
type GRNCompletedHandler struct {
	logger *zap.Logger
}

// NewGRNCompletedHandler creates a handler for GRN completion events
func NewGRNCompletedHandler(logger *zap.Logger) *GRNCompletedHandler {
	return &GRNCompletedHandler{logger: logger}
}

// EventTypes returns the event types this handler processes
func (h *GRNCompletedHandler) EventTypes() []string {
	return []string{receivingdomain.EventTypeGRNCompleted}
}

// Handle processes a GRN completion event
func (h *GRNCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*receivingdomain.GRNCompletedEvent)
	if !ok {
		h.logger.Warn("Received unexpected event type",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()))
		return nil
	}

	h.logger.Info("Goods receipt completed",
		zap.String("store_id", completed.StoreID().String()),
		zap.String("grn_id", completed.GRNID.String()),
		zap.String("grn_number", completed.GRNNumber),
		zap.String("purchase_order_id", completed.PurchaseOrderID.String()),
		zap.Int("item_count", completed.ItemCount),
		zap.Time("completed_at", completed.CompletedAt))

	return nil
}
